package astro

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownSign is returned when a sign id is not in the sign table.
var ErrUnknownSign = errors.New("unknown zodiac sign")

const (
	defaultElementScore = 50

	sameQualityScore    = 70
	flowingQualityScore = 85
	otherQualityScore   = 65
	sharedRulerScore    = 90
	differentRulerScore = 70
)

// CompatibilityResult scores a pair of signs. All scores are 0-100.
type CompatibilityResult struct {
	Score         int      `json:"score"`
	Chemistry     int      `json:"chemistry"`
	Communication int      `json:"communication"`
	Stability     int      `json:"stability"`
	Overview      string   `json:"overview"`
	Strengths     []string `json:"strengths"`
	Challenges    []string `json:"challenges"`
}

// CalculateElementCompatibility returns the element pair score scaled to
// 0-100, or 50 when either element is not in the matrix.
func CalculateElementCompatibility(e1, e2 Element) int {
	score, ok := elementCompatibility[pairOf(e1, e2)]
	if !ok || score == 0 {
		return defaultElementScore
	}
	return score * 10
}

// qualityFlows reports the directed Cardinal→Fixed→Mutable→Cardinal relation.
func qualityFlows(a, b Quality) bool {
	return (a == Cardinal && b == Fixed) ||
		(a == Fixed && b == Mutable) ||
		(a == Mutable && b == Cardinal)
}

func qualityScore(a, b Quality) int {
	switch {
	case a == b:
		return sameQualityScore
	case qualityFlows(a, b):
		return flowingQualityScore
	default:
		return otherQualityScore
	}
}

// rulerScore compares the ruling strings literally: "Uran, Saturn" and
// "Saturn" are different rulers.
func rulerScore(a, b ZodiacSign) int {
	if a.RulingString() == b.RulingString() {
		return sharedRulerScore
	}
	return differentRulerScore
}

func round(f float64) int { return int(math.Round(f)) }

func capped(f float64) int { return min(100, round(f)) }

// GetCompatibilityInsights scores the pair (a, b). The result depends only
// on the two ids. Quality flow is directional, so the score for (a, b) may
// differ from (b, a).
func GetCompatibilityInsights(a, b SignID) (CompatibilityResult, error) {
	s1, ok := Sign(a)
	if !ok {
		return CompatibilityResult{}, fmt.Errorf("%w: %q", ErrUnknownSign, a)
	}
	s2, ok := Sign(b)
	if !ok {
		return CompatibilityResult{}, fmt.Errorf("%w: %q", ErrUnknownSign, b)
	}

	element := float64(CalculateElementCompatibility(s1.Element, s2.Element))
	quality := float64(qualityScore(s1.Quality, s2.Quality))
	ruler := float64(rulerScore(s1, s2))

	score := round(element*0.5 + quality*0.3 + ruler*0.2)

	return CompatibilityResult{
		Score:         score,
		Chemistry:     capped(element * 1.1),
		Communication: capped(element*0.4 + quality*0.6),
		Stability:     capped(quality*0.5 + ruler*0.5),
		Overview:      overview(s1, s2, score),
		Strengths:     strengths(s1, s2, score),
		Challenges:    challenges(s1, s2, score),
	}, nil
}

func overview(s1, s2 ZodiacSign, score int) string {
	switch {
	case score >= 85:
		return fmt.Sprintf("Odnos između %s i %s ima izuzetan potencijal za harmoniju i dugoročni uspeh. Vaša prirodna kompatibilnost stvara odnos u kojem se osećate sigurno, shvaćeno i podržano.", s1.Name, s2.Name)
	case score >= 70:
		return fmt.Sprintf("%s i %s imaju dobru kompatibilnost koja uz međusobno razumevanje i poštovanje može stvoriti dugotrajnu i ispunjavajuću vezu. Vaše razlike mogu biti izvor rasta i učenja.", s1.Name, s2.Name)
	case score >= 50:
		return fmt.Sprintf("Odnos između %s i %s zahteva rad i prilagođavanje. Iako postoje izazovi, razumevanje međusobnih razlika može voditi ka produktivnoj vezi koja podstiče obostrani rast.", s1.Name, s2.Name)
	default:
		return fmt.Sprintf("%s i %s imaju fundamentalne razlike u pristupu životu. Veza može biti izazovna, ali ako ste spremni da učite jedno od drugog, možete razviti duboko poštovanje za različite perspektive koje svako od vas donosi.", s1.Name, s2.Name)
	}
}

func isPair(a, b, x, y Element) bool {
	return (a == x && b == y) || (a == y && b == x)
}

func strengths(s1, s2 ZodiacSign, score int) []string {
	var out []string

	switch {
	case s1.Element == s2.Element:
		out = append(out, fmt.Sprintf("Prirodno razumevanje zbog zajedničkog elementa %s", s1.Element.Name()))
	case isPair(s1.Element, s2.Element, Fire, Air), isPair(s1.Element, s2.Element, Earth, Water):
		out = append(out, fmt.Sprintf("Komplementarni elementi %s i %s koji se međusobno podržavaju", s1.Element.Name(), s2.Element.Name()))
	}

	if s1.Quality == s2.Quality {
		out = append(out, fmt.Sprintf("Sličan pristup životnim situacijama (%s kvalitet)", s1.Quality.Name()))
	} else {
		out = append(out, "Raznovrsni pogledi na svet obogaćuju vaš odnos")
	}

	r1, r2 := s1.RulingString(), s2.RulingString()
	if strings.Contains(r1, r2) || strings.Contains(r2, r1) {
		out = append(out, "Planetarna povezanost kroz vladare znakova stvara dublje razumevanje")
	}

	switch {
	case score >= 80:
		out = append(out,
			"Izuzetna emocionalna povezanost i razumevanje",
			"Prirodna hemija koja olakšava komunikaciju")
	case score >= 65:
		out = append(out,
			"Dobra ravnoteža između sličnosti i razlika",
			"Potencijal za dugoročni rast i razvoj odnosa")
	default:
		out = append(out,
			"Mogućnost učenja i proširivanja perspektive kroz različitosti",
			"Kreativni pristup rešavanju problema zajedno")
	}
	return out
}

func challenges(s1, s2 ZodiacSign, score int) []string {
	var out []string

	if isPair(s1.Element, s2.Element, Fire, Water) || isPair(s1.Element, s2.Element, Earth, Air) {
		out = append(out, fmt.Sprintf("Elementi %s i %s mogu biti u konfliktu", s1.Element.Name(), s2.Element.Name()))
	}

	if s1.Quality == s2.Quality && (s1.Quality == Cardinal || s1.Quality == Fixed) {
		kind := "fiksna"
		if s1.Quality == Cardinal {
			kind = "kardinalna"
		}
		out = append(out, fmt.Sprintf("Moguća borba za dominaciju i kontrolu (oba %s znaka)", kind))
	}

	switch {
	case score < 50:
		out = append(out,
			"Fundamentalno različiti pristupi životnim situacijama",
			"Komunikacijski izazovi zbog različitih stilova izražavanja",
			"Potreba za kompromisima u mnogim aspektima odnosa")
	case score < 65:
		out = append(out,
			"Povremeni nesporazumi zbog različitih perspektiva",
			"Potreba za aktivnim radom na komunikaciji")
	default:
		out = append(out,
			"Izbegavanje rutine može biti važno za održavanje odnosa svežim",
			"Prevelika sličnost može dovesti do nedostatka izazova i rasta")
	}
	return out
}
