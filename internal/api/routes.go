package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zvezde365/zvezde-api/internal/pkg/httputil"
	"github.com/zvezde365/zvezde-api/internal/ratelimit"
)

var defaultOrigins = []string{"https://zvezde365.com", "https://www.zvezde365.com", "http://localhost:3000"}

// SetupRoutes configures all routes. limiter may be nil.
func SetupRoutes(h *Handlers, health *HealthChecker, origins []string, limiter *ratelimit.Limiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	if len(origins) == 0 {
		origins = defaultOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.NotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.MethodNotAllowed(w)
	})

	r.Get("/health", health.HandleHealth)
	r.Get("/health/live", health.HandleLiveness)
	r.Get("/health/ready", health.HandleReadiness)

	submissions := ratelimit.Middleware(limiter, "submit")
	r.With(submissions).Post("/send-email", h.SendEmail)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Index)

		r.With(submissions).Post("/send-email", h.SendEmail)
		r.With(submissions).Post("/newsletter-subscribe", h.NewsletterSubscribe)

		r.Route("/astro", func(r chi.Router) {
			r.Get("/moon-phase", h.MoonPhase)
			r.Get("/zodiac", h.Zodiac)
			r.Get("/compatibility", h.Compatibility)
			r.Get("/affirmation", h.Affirmation)
			r.Post("/transits", h.Transits)

			r.Get("/signs", h.Signs)
			r.Get("/planets", h.Planets)
			r.Get("/aspects", h.Aspects)
			r.Get("/houses", h.Houses)
			r.Get("/elements", h.Elements)
			r.Get("/moon-phases", h.MoonPhases)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/reports", h.Reports)
			r.Get("/consultations", h.Consultations)
		})

		r.Get("/horoscopes/{sign}", h.Horoscope)
	})

	return r
}
