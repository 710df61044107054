// Package astro holds the static astrological tables and the pure
// calculations built on them: moon phase, sun sign lookup, sign
// compatibility, affirmations and transit interpretation.
//
// All tables are built once at init and never mutated; accessors hand out
// copies. Every function in this package is safe for concurrent use.
package astro

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SignID is the stable English identifier of a zodiac sign ("aries").
type SignID string

const (
	Aries       SignID = "aries"
	Taurus      SignID = "taurus"
	Gemini      SignID = "gemini"
	Cancer      SignID = "cancer"
	Leo         SignID = "leo"
	Virgo       SignID = "virgo"
	Libra       SignID = "libra"
	Scorpio     SignID = "scorpio"
	Sagittarius SignID = "sagittarius"
	Capricorn   SignID = "capricorn"
	Aquarius    SignID = "aquarius"
	Pisces      SignID = "pisces"
)

// Element is one of the four classical elements.
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

var elementNames = map[Element]string{
	Fire:  "Vatra",
	Earth: "Zemlja",
	Air:   "Vazduh",
	Water: "Voda",
}

// Name returns the Serbian display name.
func (e Element) Name() string { return elementNames[e] }

// Quality is the Cardinal/Fixed/Mutable modality of a sign.
type Quality string

const (
	Cardinal Quality = "cardinal"
	Fixed    Quality = "fixed"
	Mutable  Quality = "mutable"
)

var qualityNames = map[Quality]string{
	Cardinal: "Kardinal",
	Fixed:    "Fiksni",
	Mutable:  "Promenjiv",
}

// Name returns the Serbian display name.
func (q Quality) Name() string { return qualityNames[q] }

// MonthDay is a calendar day without a year.
type MonthDay struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (md MonthDay) String() string { return fmt.Sprintf("%02d-%02d", md.Month, md.Day) }

// before reports whether md falls strictly before other within one year.
func (md MonthDay) before(other MonthDay) bool {
	if md.Month != other.Month {
		return md.Month < other.Month
	}
	return md.Day < other.Day
}

// ZodiacSign is one row of the sign table.
type ZodiacSign struct {
	ID      SignID   `json:"id"`
	Name    string   `json:"name"`
	Start   MonthDay `json:"startDate"`
	End     MonthDay `json:"endDate"`
	Element Element  `json:"element"`
	Quality Quality  `json:"quality"`
	Rulers  []string `json:"rulers"`
}

// RulingString joins the rulers the way they are displayed ("Pluton, Mars").
func (s ZodiacSign) RulingString() string { return strings.Join(s.Rulers, ", ") }

// PlanetType classifies planets by astrological reach.
type PlanetType string

const (
	Luminary      PlanetType = "Luminary"
	Personal      PlanetType = "Personal"
	Social        PlanetType = "Social"
	Transpersonal PlanetType = "Transpersonal"
)

// Planet is one row of the planet table.
type Planet struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       PlanetType `json:"type"`
	Element    Element    `json:"element"`
	Importance int        `json:"importance"`
}

// Harmonic classifies an aspect as easy, tense or neither.
type Harmonic string

const (
	Soft    Harmonic = "Soft"
	Hard    Harmonic = "Hard"
	Neutral Harmonic = "Neutral"
)

// Aspect is one row of the aspect table. Angle and Orb are in degrees.
type Aspect struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Angle    float64  `json:"angle"`
	Orb      float64  `json:"orb"`
	Harmonic Harmonic `json:"harmonic"`
	Power    int      `json:"power"`
}

// House is one of the twelve astrological houses.
type House struct {
	Number   int    `json:"id"`
	Name     string `json:"name"`
	Keywords string `json:"keywords"`
	Ruler    string `json:"ruler"`
}

// ElementInfo describes an element and the signs that belong to it.
type ElementInfo struct {
	Element     Element  `json:"id"`
	Name        string   `json:"name"`
	Temperament string   `json:"quality"`
	Expression  string   `json:"expression"`
	Signs       []SignID `json:"signs"`
}

// MoonPhase identifies one of the eight lunar phases.
type MoonPhase string

const (
	NewMoon        MoonPhase = "new_moon"
	WaxingCrescent MoonPhase = "waxing_crescent"
	FirstQuarter   MoonPhase = "first_quarter"
	WaxingGibbous  MoonPhase = "waxing_gibbous"
	FullMoon       MoonPhase = "full_moon"
	WaningGibbous  MoonPhase = "waning_gibbous"
	LastQuarter    MoonPhase = "last_quarter"
	WaningCrescent MoonPhase = "waning_crescent"
)

// MoonPhaseInfo is the display data for a lunar phase.
type MoonPhaseInfo struct {
	ID      MoonPhase `json:"id"`
	Name    string    `json:"name"`
	Degrees float64   `json:"degrees"`
	Orb     float64   `json:"orb"`
	Meaning string    `json:"meaning"`
}

var zodiacSigns = []ZodiacSign{
	{ID: Aries, Name: "Ovan", Start: MonthDay{3, 21}, End: MonthDay{4, 19}, Element: Fire, Quality: Cardinal, Rulers: []string{"Mars"}},
	{ID: Taurus, Name: "Bik", Start: MonthDay{4, 20}, End: MonthDay{5, 20}, Element: Earth, Quality: Fixed, Rulers: []string{"Venera"}},
	{ID: Gemini, Name: "Blizanci", Start: MonthDay{5, 21}, End: MonthDay{6, 20}, Element: Air, Quality: Mutable, Rulers: []string{"Merkur"}},
	{ID: Cancer, Name: "Rak", Start: MonthDay{6, 21}, End: MonthDay{7, 22}, Element: Water, Quality: Cardinal, Rulers: []string{"Mesec"}},
	{ID: Leo, Name: "Lav", Start: MonthDay{7, 23}, End: MonthDay{8, 22}, Element: Fire, Quality: Fixed, Rulers: []string{"Sunce"}},
	{ID: Virgo, Name: "Devica", Start: MonthDay{8, 23}, End: MonthDay{9, 22}, Element: Earth, Quality: Mutable, Rulers: []string{"Merkur"}},
	{ID: Libra, Name: "Vaga", Start: MonthDay{9, 23}, End: MonthDay{10, 22}, Element: Air, Quality: Cardinal, Rulers: []string{"Venera"}},
	{ID: Scorpio, Name: "Škorpija", Start: MonthDay{10, 23}, End: MonthDay{11, 21}, Element: Water, Quality: Fixed, Rulers: []string{"Pluton", "Mars"}},
	{ID: Sagittarius, Name: "Strelac", Start: MonthDay{11, 22}, End: MonthDay{12, 21}, Element: Fire, Quality: Mutable, Rulers: []string{"Jupiter"}},
	{ID: Capricorn, Name: "Jarac", Start: MonthDay{12, 22}, End: MonthDay{1, 19}, Element: Earth, Quality: Cardinal, Rulers: []string{"Saturn"}},
	{ID: Aquarius, Name: "Vodolija", Start: MonthDay{1, 20}, End: MonthDay{2, 18}, Element: Air, Quality: Fixed, Rulers: []string{"Uran", "Saturn"}},
	{ID: Pisces, Name: "Ribe", Start: MonthDay{2, 19}, End: MonthDay{3, 20}, Element: Water, Quality: Mutable, Rulers: []string{"Neptun", "Jupiter"}},
}

var planets = []Planet{
	{ID: "sun", Name: "Sunce", Type: Luminary, Element: Fire, Importance: 1},
	{ID: "moon", Name: "Mesec", Type: Luminary, Element: Water, Importance: 2},
	{ID: "mercury", Name: "Merkur", Type: Personal, Element: Air, Importance: 3},
	{ID: "venus", Name: "Venera", Type: Personal, Element: Earth, Importance: 4},
	{ID: "mars", Name: "Mars", Type: Personal, Element: Fire, Importance: 5},
	{ID: "jupiter", Name: "Jupiter", Type: Social, Element: Fire, Importance: 6},
	{ID: "saturn", Name: "Saturn", Type: Social, Element: Earth, Importance: 7},
	{ID: "uranus", Name: "Uran", Type: Transpersonal, Element: Air, Importance: 8},
	{ID: "neptune", Name: "Neptun", Type: Transpersonal, Element: Water, Importance: 9},
	{ID: "pluto", Name: "Pluton", Type: Transpersonal, Element: Water, Importance: 10},
}

var aspects = []Aspect{
	{ID: "conjunction", Name: "Konjunkcija", Angle: 0, Orb: 8, Harmonic: Neutral, Power: 10},
	{ID: "opposition", Name: "Opozicija", Angle: 180, Orb: 8, Harmonic: Hard, Power: 9},
	{ID: "trine", Name: "Trigon", Angle: 120, Orb: 7, Harmonic: Soft, Power: 8},
	{ID: "square", Name: "Kvadrat", Angle: 90, Orb: 7, Harmonic: Hard, Power: 7},
	{ID: "sextile", Name: "Sekstil", Angle: 60, Orb: 6, Harmonic: Soft, Power: 6},
	{ID: "quincunx", Name: "Kvinkunks", Angle: 150, Orb: 5, Harmonic: Neutral, Power: 5},
	{ID: "semisextile", Name: "Polusekstil", Angle: 30, Orb: 3, Harmonic: Neutral, Power: 4},
	{ID: "semisquare", Name: "Polukvadratura", Angle: 45, Orb: 3, Harmonic: Hard, Power: 3},
	{ID: "sesquisquare", Name: "Seskvikvadratura", Angle: 135, Orb: 3, Harmonic: Hard, Power: 3},
	{ID: "quintile", Name: "Kvintil", Angle: 72, Orb: 2, Harmonic: Soft, Power: 2},
	{ID: "biquintile", Name: "Bikvintil", Angle: 144, Orb: 2, Harmonic: Soft, Power: 2},
}

var houses = []House{
	{Number: 1, Name: "Prva kuća", Keywords: "Identitet, fizički izgled, lični izraz", Ruler: "Aries/Mars"},
	{Number: 2, Name: "Druga kuća", Keywords: "Materijalne vrednosti, prihodi, resursi", Ruler: "Taurus/Venus"},
	{Number: 3, Name: "Treća kuća", Keywords: "Komunikacija, učenje, braća i sestre", Ruler: "Gemini/Mercury"},
	{Number: 4, Name: "Četvrta kuća", Keywords: "Dom, porodica, koreni, privatnost", Ruler: "Cancer/Moon"},
	{Number: 5, Name: "Peta kuća", Keywords: "Kreativnost, ljubav, deca, zabava", Ruler: "Leo/Sun"},
	{Number: 6, Name: "Šesta kuća", Keywords: "Zdravlje, svakodnevne rutine, posao", Ruler: "Virgo/Mercury"},
	{Number: 7, Name: "Sedma kuća", Keywords: "Partnerstva, brak, odnosi", Ruler: "Libra/Venus"},
	{Number: 8, Name: "Osma kuća", Keywords: "Transformacija, zajedničke finansije, intimnost", Ruler: "Scorpio/Pluto"},
	{Number: 9, Name: "Deveta kuća", Keywords: "Filozofija, putovanja, visoko obrazovanje", Ruler: "Sagittarius/Jupiter"},
	{Number: 10, Name: "Deseta kuća", Keywords: "Karijera, status, javni imidž", Ruler: "Capricorn/Saturn"},
	{Number: 11, Name: "Jedanaesta kuća", Keywords: "Prijatelji, grupe, nade i želje", Ruler: "Aquarius/Uranus"},
	{Number: 12, Name: "Dvanaesta kuća", Keywords: "Podsvest, duhovno, samoća, tajne", Ruler: "Pisces/Neptune"},
}

var elements = []ElementInfo{
	{Element: Fire, Name: "Vatra", Temperament: "Topla i suva", Expression: "Energija, strast, inicijativa", Signs: []SignID{Aries, Leo, Sagittarius}},
	{Element: Earth, Name: "Zemlja", Temperament: "Hladna i suva", Expression: "Praktičnost, stabilnost, materijalnost", Signs: []SignID{Taurus, Virgo, Capricorn}},
	{Element: Air, Name: "Vazduh", Temperament: "Topli i vlažni", Expression: "Intelekt, komunikacija, društvenost", Signs: []SignID{Gemini, Libra, Aquarius}},
	{Element: Water, Name: "Voda", Temperament: "Hladna i vlažna", Expression: "Emocije, intuicija, dubina", Signs: []SignID{Cancer, Scorpio, Pisces}},
}

var moonPhases = []MoonPhaseInfo{
	{ID: NewMoon, Name: "Mlad mesec", Degrees: 0, Orb: 15, Meaning: "Nov početak, postavljanje namera, početak ciklusa"},
	{ID: WaxingCrescent, Name: "Rastući polumesec", Degrees: 45, Orb: 15, Meaning: "Izgradnja momentum, rast, početni napori"},
	{ID: FirstQuarter, Name: "Prva četvrt", Degrees: 90, Orb: 15, Meaning: "Akcija, odluke, suočavanje sa prvim izazovima"},
	{ID: WaxingGibbous, Name: "Rastuća ispupčenost", Degrees: 135, Orb: 15, Meaning: "Refining, usavršavanje, prilagođavanje"},
	{ID: FullMoon, Name: "Pun mesec", Degrees: 180, Orb: 15, Meaning: "Kulminacija, realizacija, jasnoća, vrhunac"},
	{ID: WaningGibbous, Name: "Opadajuća ispupčenost", Degrees: 225, Orb: 15, Meaning: "Zahvalnost, deljenje, integracija"},
	{ID: LastQuarter, Name: "Poslednja četvrt", Degrees: 270, Orb: 15, Meaning: "Preispitivanje, puštanje, odluke o budućem smeru"},
	{ID: WaningCrescent, Name: "Opadajući polumesec", Degrees: 315, Orb: 15, Meaning: "Otpuštanje, završavanje, regeneracija, priprema za novi ciklus"},
}

// elementPair is an unordered pair key; the matrix is symmetric by construction.
type elementPair struct{ a, b Element }

func pairOf(a, b Element) elementPair {
	if b < a {
		a, b = b, a
	}
	return elementPair{a, b}
}

// elementCompatibility scores element pairs on a 1-10 scale.
var elementCompatibility = map[elementPair]int{
	pairOf(Fire, Fire):   8,
	pairOf(Fire, Earth):  4,
	pairOf(Fire, Air):    9,
	pairOf(Fire, Water):  5,
	pairOf(Earth, Earth): 7,
	pairOf(Earth, Air):   5,
	pairOf(Earth, Water): 9,
	pairOf(Air, Air):     8,
	pairOf(Air, Water):   4,
	pairOf(Water, Water): 8,
}

var (
	signIndex     = make(map[SignID]int, len(zodiacSigns))
	signNameIndex = make(map[string]SignID, len(zodiacSigns))
	phaseIndex    = make(map[MoonPhase]int, len(moonPhases))
)

func init() {
	for i, s := range zodiacSigns {
		signIndex[s.ID] = i
		signNameIndex[foldName(s.Name)] = s.ID
	}
	for i, p := range moonPhases {
		phaseIndex[p.ID] = i
	}
}

func copySign(s ZodiacSign) ZodiacSign {
	s.Rulers = append([]string(nil), s.Rulers...)
	return s
}

// Sign looks up a sign by id.
func Sign(id SignID) (ZodiacSign, bool) {
	i, ok := signIndex[id]
	if !ok {
		return ZodiacSign{}, false
	}
	return copySign(zodiacSigns[i]), true
}

// ParseSignID normalizes user input to a known SignID. Both ids ("  Aries ")
// and Serbian display names ("Škorpija", "skorpija") are accepted.
func ParseSignID(s string) (SignID, bool) {
	id := SignID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := signIndex[id]; ok {
		return id, true
	}
	if byName, ok := signNameIndex[foldName(string(id))]; ok {
		return byName, true
	}
	return id, false
}

// foldName case-folds and strips combining marks so "ŠKORPIJA" and
// "skorpija" compare equal.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Signs returns the twelve signs in zodiacal order starting with Aries.
func Signs() []ZodiacSign {
	out := make([]ZodiacSign, len(zodiacSigns))
	for i, s := range zodiacSigns {
		out[i] = copySign(s)
	}
	return out
}

// Planets returns the planet table ordered by importance.
func Planets() []Planet { return append([]Planet(nil), planets...) }

// PlanetByID looks up a planet.
func PlanetByID(id string) (Planet, bool) {
	for _, p := range planets {
		if p.ID == id {
			return p, true
		}
	}
	return Planet{}, false
}

// Aspects returns the aspect table ordered by power.
func Aspects() []Aspect { return append([]Aspect(nil), aspects...) }

// AspectByID looks up an aspect.
func AspectByID(id string) (Aspect, bool) {
	for _, a := range aspects {
		if a.ID == id {
			return a, true
		}
	}
	return Aspect{}, false
}

// Houses returns the twelve houses.
func Houses() []House { return append([]House(nil), houses...) }

// Elements returns the four elements with their signs.
func Elements() []ElementInfo {
	out := make([]ElementInfo, len(elements))
	for i, e := range elements {
		e.Signs = append([]SignID(nil), e.Signs...)
		out[i] = e
	}
	return out
}

// MoonPhases returns the eight phases in cycle order.
func MoonPhases() []MoonPhaseInfo { return append([]MoonPhaseInfo(nil), moonPhases...) }

// MoonPhaseByID looks up display data for a phase.
func MoonPhaseByID(id MoonPhase) (MoonPhaseInfo, bool) {
	i, ok := phaseIndex[id]
	if !ok {
		return MoonPhaseInfo{}, false
	}
	return moonPhases[i], true
}

// ParseMoonPhase normalizes user input to a known MoonPhase.
func ParseMoonPhase(s string) (MoonPhase, bool) {
	id := MoonPhase(strings.ToLower(strings.TrimSpace(s)))
	_, ok := phaseIndex[id]
	return id, ok
}
