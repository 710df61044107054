// Package api exposes the astrology calculations, horoscope content and
// the form submission relay over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zvezde365/zvezde-api/internal/astro"
	"github.com/zvezde365/zvezde-api/internal/horoscope"
	"github.com/zvezde365/zvezde-api/internal/pkg/httputil"
	"github.com/zvezde365/zvezde-api/internal/ratelimit"
	"github.com/zvezde365/zvezde-api/internal/relay"
)

// Deps are the collaborators the HTTP layer needs. Only Relay is required;
// the rest may be nil.
type Deps struct {
	Relay        *relay.Relay
	Horoscopes   *horoscope.Store
	Refresher    *horoscope.Refresher
	Limiter      *ratelimit.Limiter
	Redis        *redis.Client
	Affirmations *astro.AffirmationGenerator
	Now          func() time.Time
}

// Handlers holds the endpoint implementations.
type Handlers struct {
	relay        *relay.Relay
	horoscopes   *horoscope.Store
	affirmations *astro.AffirmationGenerator
	now          func() time.Time
}

// NewHandlers builds handlers from deps, filling in defaults.
func NewHandlers(deps Deps) *Handlers {
	h := &Handlers{
		relay:        deps.Relay,
		horoscopes:   deps.Horoscopes,
		affirmations: deps.Affirmations,
		now:          deps.Now,
	}
	if h.horoscopes == nil {
		h.horoscopes = horoscope.NewStore()
	}
	if h.affirmations == nil {
		h.affirmations = astro.NewAffirmationGenerator(nil)
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

type endpoint struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

var endpoints = []endpoint{
	{"/api/send-email", "POST", "Send email with natal chart order details"},
	{"/api/newsletter-subscribe", "POST", "Subscribe to the newsletter"},
	{"/api/astro/moon-phase", "GET", "Moon phase for a date"},
	{"/api/astro/zodiac", "GET", "Sun sign for a month and day"},
	{"/api/astro/compatibility", "GET", "Compatibility between two signs"},
	{"/api/astro/affirmation", "GET", "Daily affirmation for a sign"},
	{"/api/astro/transits", "POST", "Interpret transit aspects"},
	{"/api/horoscopes/{sign}", "GET", "Horoscope for a sign"},
	{"/api/catalog/reports", "GET", "Astrological reports"},
	{"/api/catalog/consultations", "GET", "Consultation types"},
}

// Index describes the API.
//
//	GET /api
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]interface{}{
		"status":    "ok",
		"message":   "Zvezde365 API is operational",
		"endpoints": endpoints,
	})
}
