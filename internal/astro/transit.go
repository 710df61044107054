package astro

import (
	"math"
	"sort"
	"strings"
)

// Significance grades a transit by how close it is to exact.
type Significance string

const (
	Major    Significance = "major"
	Moderate Significance = "moderate"
	Minor    Significance = "minor"
)

func (s Significance) rank() int {
	switch s {
	case Major:
		return 0
	case Moderate:
		return 1
	default:
		return 2
	}
}

// SignificanceFor maps an orb in degrees to a significance grade.
func SignificanceFor(orb float64) Significance {
	switch {
	case orb < 2:
		return Major
	case orb < 4:
		return Moderate
	default:
		return Minor
	}
}

// TransitAspect is an aspect between a transiting planet and a natal point.
type TransitAspect struct {
	TransitPlanet string  `json:"transitPlanet"`
	NatalPlanet   string  `json:"natalPlanet"`
	AspectType    string  `json:"aspectType"`
	Orb           float64 `json:"orb"`
	Applying      bool    `json:"applying"`
}

// Significance is derived from the orb.
func (t TransitAspect) Significance() Significance { return SignificanceFor(t.Orb) }

// MatchAspect finds the aspect formed by two points separated by the given
// number of degrees. The separation is folded into [0, 180]. When several
// aspects are within orb the one closest to exact wins.
func MatchAspect(separation float64) (Aspect, float64, bool) {
	sep := math.Mod(math.Abs(separation), 360)
	if sep > 180 {
		sep = 360 - sep
	}

	var (
		best    Aspect
		bestOrb = math.Inf(1)
	)
	for _, a := range aspects {
		orb := math.Abs(sep - a.Angle)
		if orb <= a.Orb && orb < bestOrb {
			best, bestOrb = a, orb
		}
	}
	if math.IsInf(bestOrb, 1) {
		return Aspect{}, 0, false
	}
	return best, bestOrb, true
}

// SortTransits orders transits major first, then by ascending orb. The
// input slice is sorted in place and returned.
func SortTransits(ts []TransitAspect) []TransitAspect {
	sort.SliceStable(ts, func(i, j int) bool {
		ri, rj := ts[i].Significance().rank(), ts[j].Significance().rank()
		if ri != rj {
			return ri < rj
		}
		return ts[i].Orb < ts[j].Orb
	})
	return ts
}

// PointName returns the display name for a planet id or one of the natal
// angles. Unknown ids are returned unchanged.
func PointName(id string) string {
	if p, ok := PlanetByID(id); ok {
		return p.Name
	}
	switch id {
	case "ascendant":
		return "Ascendent"
	case "midheaven":
		return "Medium Coeli"
	}
	return id
}

// interpretations is keyed by aspect id, then natal point id. The "default"
// entry applies to any natal point without its own text. Templates use
// {transit} and {natal} placeholders.
var interpretations = map[string]map[string]string{
	"conjunction": {
		"sun":     "Tranzitno {transit} u konjunkciji sa vašim natalnim {natal} donosi period intenzivne energije i fokusa. Ovo je vreme kada možete jasnije izraziti kvalitete vašeg natalnog {natal}.",
		"moon":    "Tranzitno {transit} u konjunkciji sa vašim natalnim {natal} pojačava vaše emocije i intuiciju. Period je pogodan za emotivno povezivanje i razumevanje dubinskih osećanja.",
		"default": "Tranzitno {transit} u konjunkciji sa vašim natalnim {natal} aktivira i pojačava karakteristike i teme povezane sa obe planete. Ovo je period kada ove energije dobijaju na značaju u vašem životu.",
	},
	"opposition": {
		"default": "Tranzitno {transit} u opoziciji sa vašim natalnim {natal} stvara dinamiku tenzije i balansa. Možda ćete se suočiti sa izazovima koji zahtevaju integraciju ovih naizgled suprotstavljenih energija.",
	},
	"trine": {
		"default": "Tranzitno {transit} u trigonu sa vašim natalnim {natal} stvara period harmonije i lakoće. Kvaliteti obe planete se prirodno podržavaju i omogućavaju vam napredak bez velikih prepreka.",
	},
	"square": {
		"default": "Tranzitno {transit} u kvadratu sa vašim natalnim {natal} donosi izazove koji traže akciju i prilagođavanje. Ove tenzije mogu biti produktivne ako ih iskoristite kao motiv za neophodne promene.",
	},
	"sextile": {
		"default": "Tranzitno {transit} u sekstilu sa vašim natalnim {natal} pruža prilike za rast i razvoj. Ovo je povoljan period za aktivnosti povezane sa kvalitetima obe planete.",
	},
}

const generalInterpretation = "Tranzitno {transit} formira {aspect} sa vašim natalnim {natal}, što utiče na oblasti života povezane sa obe planete."

// InterpretTransit returns a short reading for t.
func InterpretTransit(t TransitAspect) string {
	aspectName := t.AspectType
	if a, ok := AspectByID(t.AspectType); ok {
		aspectName = a.Name
	}

	tmpl := generalInterpretation
	if byNatal, ok := interpretations[t.AspectType]; ok {
		if text, ok := byNatal[t.NatalPlanet]; ok {
			tmpl = text
		} else {
			tmpl = byNatal["default"]
		}
	}

	return fillTransit(tmpl, PointName(t.TransitPlanet), PointName(t.NatalPlanet), aspectName)
}

func fillTransit(tmpl, transit, natal, aspect string) string {
	return strings.NewReplacer("{transit}", transit, "{natal}", natal, "{aspect}", aspect).Replace(tmpl)
}

const (
	recommendationNone        = "Trenutno nema značajnih tranzita. Ovo je period kada možete fokusirati na lične ciljeve bez velikih spoljnih uticaja."
	recommendationHarmonious  = "Trenutni tranziti su pretežno harmonični, pružajući vam period lakoće i podrške. Ovo je idealno vreme za započinjanje novih projekata, društvene aktivnosti i napredovanje u područjima koja su vam važna. Iskoristite ovaj povoljan period za ostvarivanje ciljeva uz manje otpora nego obično."
	recommendationChallenging = "Trenutni tranziti donose više izazova nego harmonije. Ovo je period rasta kroz suočavanje sa preprekama. Fokusirajte se na strpljenje, samosvest i fleksibilnost. Iako može biti teško, ovi izazovni aspekti često donose najvrednije lekcije i priliku za značajne promene u vašem životu."
	recommendationMajor       = "Trenutno doživljavate nekoliko značajnih tranzita koji mogu označavati važan period u vašem životu. Obratite posebnu pažnju na glavne teme koje se pojavljuju, jer će verovatno imati dugoročni uticaj na vaš životni put. Ovo je vreme kada se donose važne odluke i postavljaju temelji za budućnost."
	recommendationMixed       = "Trenutni tranziti donose mešavinu harmoničnih i izazovnih uticaja. Ovo je period koji zahteva balans između akcije i refleksije. Možete napredovati u mnogim oblastima, ali uz svest o potencijalnim preprekama. Budite otvoreni za prilike, ali i realistični u proceni izazova."
)

// OverallRecommendation summarizes a set of transits. Trines and sextiles
// count as harmonious, squares and oppositions as challenging.
func OverallRecommendation(ts []TransitAspect) string {
	if len(ts) == 0 {
		return recommendationNone
	}

	var harmonious, challenging, major, moderate, minor int
	for _, t := range ts {
		switch t.AspectType {
		case "trine", "sextile":
			harmonious++
		case "square", "opposition":
			challenging++
		}
		switch t.Significance() {
		case Major:
			major++
		case Moderate:
			moderate++
		default:
			minor++
		}
	}

	switch {
	case harmonious > challenging*2:
		return recommendationHarmonious
	case challenging > harmonious*2:
		return recommendationChallenging
	case major > moderate+minor:
		return recommendationMajor
	default:
		return recommendationMixed
	}
}
