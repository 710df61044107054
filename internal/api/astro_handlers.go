package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zvezde365/zvezde-api/internal/astro"
	"github.com/zvezde365/zvezde-api/internal/pkg/httputil"
)

// parseDate accepts RFC 3339 or YYYY-MM-DD. Empty means now.
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

type moonPhaseResponse struct {
	astro.MoonPhaseResult
	Date time.Time           `json:"date"`
	Info astro.MoonPhaseInfo `json:"info"`
}

// MoonPhase computes the lunar phase for a date.
//
//	GET /api/astro/moon-phase?date=2025-03-14
func (h *Handlers) MoonPhase(w http.ResponseWriter, r *http.Request) {
	t, err := parseDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		httputil.BadRequest(w, "Invalid date, expected YYYY-MM-DD or RFC 3339")
		return
	}
	res := astro.CalculateMoonPhase(t)
	info, _ := astro.MoonPhaseByID(res.Phase)
	httputil.OK(w, moonPhaseResponse{MoonPhaseResult: res, Date: t, Info: info})
}

// Zodiac resolves the sun sign for a month and day.
//
//	GET /api/astro/zodiac?month=3&day=21
func (h *Handlers) Zodiac(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month, err1 := strconv.Atoi(q.Get("month"))
	day, err2 := strconv.Atoi(q.Get("day"))
	if err1 != nil || err2 != nil {
		httputil.BadRequest(w, "month and day must be integers")
		return
	}

	id, ok := astro.ResolveSign(month, day)
	fallback := !ok
	if fallback {
		id = astro.GetZodiacSign(month, day)
	}
	sign, _ := astro.Sign(id)
	httputil.OK(w, map[string]interface{}{
		"sign":     id,
		"data":     sign,
		"fallback": fallback,
	})
}

// Compatibility scores two signs.
//
//	GET /api/astro/compatibility?sign1=aries&sign2=leo
func (h *Handlers) Compatibility(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, okA := astro.ParseSignID(q.Get("sign1"))
	b, okB := astro.ParseSignID(q.Get("sign2"))
	if !okA || !okB {
		httputil.BadRequest(w, astro.ErrUnknownSign.Error())
		return
	}

	res, err := astro.GetCompatibilityInsights(a, b)
	if err != nil {
		if errors.Is(err, astro.ErrUnknownSign) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{
		"sign1":  a,
		"sign2":  b,
		"result": res,
	})
}

// Affirmation returns an affirmation for a sign, optionally tuned to a
// moon phase. phase=current uses today's phase.
//
//	GET /api/astro/affirmation?sign=leo&phase=full_moon
func (h *Handlers) Affirmation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sign, _ := astro.ParseSignID(q.Get("sign"))

	var phase astro.MoonPhase
	switch raw := q.Get("phase"); {
	case strings.EqualFold(raw, "current"):
		phase = astro.CalculateMoonPhase(h.now()).Phase
	case raw != "":
		p, ok := astro.ParseMoonPhase(raw)
		if !ok {
			httputil.BadRequest(w, "Unknown moon phase")
			return
		}
		phase = p
	}

	httputil.OK(w, map[string]interface{}{
		"sign":        sign,
		"phase":       phase,
		"affirmation": h.affirmations.Generate(sign, phase),
	})
}

type transitInput struct {
	TransitPlanet string   `json:"transitPlanet"`
	NatalPlanet   string   `json:"natalPlanet"`
	AspectType    string   `json:"aspectType"`
	Orb           *float64 `json:"orb"`
	Separation    *float64 `json:"separation"`
	Applying      bool     `json:"applying"`
}

type transitOutput struct {
	astro.TransitAspect
	Significance   astro.Significance `json:"significance"`
	Interpretation string             `json:"interpretation"`
}

// Transits grades and interprets a set of transit aspects. Each input
// either names its aspect and orb or gives the angular separation, in
// which case the aspect is matched; separations that form no aspect are
// dropped.
//
//	POST /api/astro/transits
func (h *Handlers) Transits(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transits []transitInput `json:"transits"`
	}
	if !httputil.Decode(w, r, &req) {
		return
	}

	aspects := make([]astro.TransitAspect, 0, len(req.Transits))
	for i, in := range req.Transits {
		if in.TransitPlanet == "" || in.NatalPlanet == "" {
			httputil.BadRequest(w, "transit "+strconv.Itoa(i)+": transitPlanet and natalPlanet are required")
			return
		}
		ta := astro.TransitAspect{TransitPlanet: in.TransitPlanet, NatalPlanet: in.NatalPlanet, Applying: in.Applying}

		switch {
		case in.AspectType != "" && in.Orb != nil:
			if _, ok := astro.AspectByID(in.AspectType); !ok {
				httputil.BadRequest(w, "transit "+strconv.Itoa(i)+": unknown aspect "+in.AspectType)
				return
			}
			ta.AspectType, ta.Orb = in.AspectType, *in.Orb
		case in.Separation != nil:
			a, orb, ok := astro.MatchAspect(*in.Separation)
			if !ok {
				continue
			}
			ta.AspectType, ta.Orb = a.ID, orb
		default:
			httputil.BadRequest(w, "transit "+strconv.Itoa(i)+": give aspectType and orb, or separation")
			return
		}
		aspects = append(aspects, ta)
	}

	astro.SortTransits(aspects)
	out := make([]transitOutput, len(aspects))
	for i, ta := range aspects {
		out[i] = transitOutput{
			TransitAspect:  ta,
			Significance:   ta.Significance(),
			Interpretation: astro.InterpretTransit(ta),
		}
	}
	httputil.OK(w, map[string]interface{}{
		"transits":       out,
		"recommendation": astro.OverallRecommendation(aspects),
	})
}

// Signs lists the zodiac signs.
func (h *Handlers) Signs(w http.ResponseWriter, r *http.Request) { httputil.OK(w, astro.Signs()) }

// Planets lists the planets.
func (h *Handlers) Planets(w http.ResponseWriter, r *http.Request) { httputil.OK(w, astro.Planets()) }

// Aspects lists the aspects.
func (h *Handlers) Aspects(w http.ResponseWriter, r *http.Request) { httputil.OK(w, astro.Aspects()) }

// Houses lists the houses.
func (h *Handlers) Houses(w http.ResponseWriter, r *http.Request) { httputil.OK(w, astro.Houses()) }

// Elements lists the elements.
func (h *Handlers) Elements(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, astro.Elements())
}

// MoonPhases lists the lunar phases.
func (h *Handlers) MoonPhases(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, astro.MoonPhases())
}
