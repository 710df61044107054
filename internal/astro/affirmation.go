package astro

import (
	"math/rand/v2"
	"strings"
)

// GenericAffirmation is returned for unknown signs.
const GenericAffirmation = "Danas je dan za pozitivne misli i konstruktivne akcije."

// Picker returns an index in [0, n). Tests inject a deterministic one.
type Picker func(n int) int

var signAffirmations = map[SignID][]string{
	Aries: {
		"Moja hrabrost mi otvara nova vrata uspeha.",
		"Moja energija i entuzijazam inspirišu druge.",
		"Svaki dan koristim svoju strast za stvaranje života koji želim.",
		"Moja direktnost i iskrenost su moje snage.",
		"Prihvatam nove izazove sa samopouzdanjem i odlučnošću.",
	},
	Taurus: {
		"Privlačim stabilnost i obilje u svoj život.",
		"Moja istrajnost mi donosi dugotrajne rezultate.",
		"Cenim svoj komfor i stvaram harmoniju oko sebe.",
		"Moja praktičnost i strpljenje su moji najveći saveznici.",
		"Zaslužujem lepotu i obilje u svom životu.",
	},
	Gemini: {
		"Moja prilagodljivost mi omogućava da cvetam u svim situacijama.",
		"Moja znatiželja me vodi do fascinantnih otkrića.",
		"Moja komunikacija je jasna, efektivna i inspirativna.",
		"Otvoren/a sam za nove ideje i perspektive.",
		"Moja mentalna fleksibilnost je moj najveći dar.",
	},
	Cancer: {
		"Moje emocije su izvor moje snage i intuicije.",
		"Stvaram sigurno utočište gde god da idem.",
		"Moja briga za druge se vraća meni umnogostručeno.",
		"Intuitivno znam šta je najbolje za mene.",
		"Prihvatam i cenim svoju osetljivost.",
	},
	Leo: {
		"Moje samopouzdanje zrači iz mene i inspiriše druge.",
		"Zaslužujem da budem u centru pažnje i primljen/a sa ljubavlju.",
		"Moja kreativnost se izražava u svemu što radim.",
		"Lider sam u svom životu i sledim svoje srce.",
		"Moja velikodušnost privlači obilje u moj život.",
	},
	Virgo: {
		"Moja preciznost i pažnja za detalje donose savršenstvo.",
		"Moja analitičnost mi pomaže da rešim svaki problem.",
		"Cenim napredak, bez obzira koliko je mali.",
		"Moja praktičnost mi pomaže da ostvarim svoje ciljeve.",
		"Dobro sam organizovan/a i uspešno upravljam svim aspektima svog života.",
	},
	Libra: {
		"Privlačim harmonične odnose u svoj život.",
		"Balans i lepota me okružuju gde god da idem.",
		"Moja diplomatija rešava konflikte sa lakoćom.",
		"Donosim pravične i mudre odluke.",
		"Cenim partnerstva zasnovana na jednakosti i poštovanju.",
	},
	Scorpio: {
		"Moja intenzivnost i strast su moje najveće snage.",
		"Konstantno se transformišem i iznova rađam.",
		"Moja intuicija me vodi do duboke istine.",
		"Hrabro se suočavam sa svojim najdubljim osećanjima.",
		"Moja moć regeneracije je neograničena.",
	},
	Sagittarius: {
		"Moj optimizam me vodi ka novim avanturama.",
		"Konstantno širim svoje horizonte i učim.",
		"Moja iskrenost i entuzijazam inspirišu druge.",
		"Slobodan/na sam da istražim sve mogućnosti.",
		"Moja životna filozofija me vodi ka mudrosti.",
	},
	Capricorn: {
		"Moja disciplina i istrajnost garantuju moj uspeh.",
		"Strpljivo gradim temelje za dugoročni uspeh.",
		"Zaslužujem priznanje za svoj naporan rad.",
		"Moja ambicija me vodi ka vrhovima mojih sposobnosti.",
		"Preuzimam odgovornost za kreiranje života koji želim.",
	},
	Aquarius: {
		"Moja jedinstvenost je moja najveća snaga.",
		"Slobodan/na sam da budem svoj/a i da doprinesem čovečanstvu.",
		"Moje inovativne ideje menjaju svet na bolje.",
		"Povezujem se sa drugima na dubokom intelektualnom nivou.",
		"Prihvatam promene i radim na stvaranju bolje budućnosti.",
	},
	Pisces: {
		"Moja intuicija me vodi ka mojoj najvišoj svrsi.",
		"Moja osetljivost je moj dar i moja snaga.",
		"Povezan/a sam sa duhovnom mudrošću koja me vodi.",
		"Privlačim ljubav i razumevanje u svoj život.",
		"Moja mašta stvara moju realnost.",
	},
}

// phaseAffirmations may reference {sign}, the sign's display name.
var phaseAffirmations = map[MoonPhase][]string{
	NewMoon: {
		"Kao {sign}, započinjem nove projekte sa svežom energijom i jasnom vizijom.",
		"Sada je savršeno vreme da posadim seme novih početaka u mom životu.",
		"Otvoren/a sam za nove mogućnosti koje se pojavljuju u mom životu.",
	},
	WaxingCrescent: {
		"Svaki dan gradim momentum ka svojim ciljevima sa strpljenjem i istrajnošću.",
		"Moj rast je konstantan i vidljiv, baš kao i rastući mesec.",
		"Napredovanje ka mojim ciljevima postaje sve jasnije i sigurnije.",
	},
	FirstQuarter: {
		"Spreman/na sam da prevazilazim prepreke na putu ka ostvarenju svojih ciljeva.",
		"Imam odlučnost i hrabrost da nastavim uprkos izazovima koji se pojavljuju.",
		"Svaki izazov je prilika da demonstriram svoju snagu i posvećenost.",
	},
	WaxingGibbous: {
		"Usavršavam svoje veštine i prilagođavam svoje planove da bi postigao/la maksimum.",
		"Blizu sam ostvarenja svojih ciljeva i nastavljam sa posvećenošću.",
		"Jasno vidim rezultate svog truda i fokusiram se na finalne detalje.",
	},
	FullMoon: {
		"Prepoznajem i slavim svoje uspehe sa ponosom i zahvalnošću.",
		"Moji napori dolaze do punog izražaja, baš kao i pun mesec na nebu.",
		"Stojim u punoj svetlosti svojih dostignuća i svoje istinske prirode.",
	},
	WaningGibbous: {
		"Delim svoje darove i znanje sa drugima sa velikodušnošću i zahvalnošću.",
		"Vreme je da integršem naučene lekcije i iskustva u svoju mudrost.",
		"S zahvalnošću prihvatam sve što sam postigao/la i naučio/la.",
	},
	LastQuarter: {
		"Otpuštam ono što mi više ne služi sa zahvalnošću za lekcije koje sam naučio/la.",
		"Spreman/na sam da se odvojim od starih navika i verovanja koja me ograničavaju.",
		"Pravim prostor za nove mogućnosti otpuštajući ono što je završeno.",
	},
	WaningCrescent: {
		"Odmaram se i regenerišem, znajući da je odmor deo procesa kreacije.",
		"Pripremam se za novi ciklus rasta sa jasnom vizijom i obnovljenom energijom.",
		"U tišini i odmoru pronalazim mudrost za svoje sledeće korake.",
	},
}

// AffirmationGenerator builds affirmations from the per-sign and per-phase
// pools. It is safe for concurrent use if its Picker is.
type AffirmationGenerator struct {
	pick Picker
}

// NewAffirmationGenerator returns a generator using pick, or math/rand/v2
// when pick is nil.
func NewAffirmationGenerator(pick Picker) *AffirmationGenerator {
	if pick == nil {
		pick = rand.IntN
	}
	return &AffirmationGenerator{pick: pick}
}

// Generate picks one sentence for sign and, when phase is a known moon
// phase, appends one sentence for that phase. An empty phase means none.
func (g *AffirmationGenerator) Generate(sign SignID, phase MoonPhase) string {
	s, ok := Sign(sign)
	if !ok {
		return GenericAffirmation
	}

	pool := signAffirmations[sign]
	text := pool[g.index(len(pool))]

	phasePool, ok := phaseAffirmations[phase]
	if !ok {
		return text
	}
	tmpl := phasePool[g.index(len(phasePool))]
	return text + " " + withSign(tmpl, s.Name)
}

// index clamps the picker's answer so a misbehaving Picker cannot panic.
func (g *AffirmationGenerator) index(n int) int {
	i := g.pick(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

func withSign(tmpl, name string) string {
	return strings.ReplaceAll(tmpl, "{sign}", name)
}

// SignAffirmations returns the sentence pool for a sign.
func SignAffirmations(sign SignID) []string {
	return append([]string(nil), signAffirmations[sign]...)
}

// PhaseAffirmations returns the sentence pool for a phase with the sign
// name filled in.
func PhaseAffirmations(sign SignID, phase MoonPhase) []string {
	s, _ := Sign(sign)
	out := make([]string, 0, len(phaseAffirmations[phase]))
	for _, tmpl := range phaseAffirmations[phase] {
		out = append(out, withSign(tmpl, s.Name))
	}
	return out
}

var defaultAffirmations = NewAffirmationGenerator(nil)

// GenerateAffirmation uses the process-wide random source.
func GenerateAffirmation(sign SignID, phase MoonPhase) string {
	return defaultAffirmations.Generate(sign, phase)
}
