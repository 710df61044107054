package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zvezde365/zvezde-api/internal/astro"
	"github.com/zvezde365/zvezde-api/internal/catalog"
	"github.com/zvezde365/zvezde-api/internal/horoscope"
	"github.com/zvezde365/zvezde-api/internal/pkg/httputil"
)

// Reports lists the report catalog.
//
//	GET /api/catalog/reports
func (h *Handlers) Reports(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, catalog.Reports())
}

// Consultations lists the consultation catalog.
//
//	GET /api/catalog/consultations
func (h *Handlers) Consultations(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, catalog.Consultations())
}

var belgrade = loadBelgrade()

func loadBelgrade() *time.Location {
	loc, err := time.LoadLocation("Europe/Belgrade")
	if err != nil {
		return time.UTC
	}
	return loc
}

type horoscopeResponse struct {
	horoscope.Lookup
	SignName         string `json:"signName"`
	LastUpdatedLabel string `json:"lastUpdatedLabel"`
}

// Horoscope returns one sign's text for a period and category. Unknown
// periods read as daily and unknown categories as general.
//
//	GET /api/horoscopes/{sign}?period=weekly&category=love
func (h *Handlers) Horoscope(w http.ResponseWriter, r *http.Request) {
	sign, ok := astro.ParseSignID(chi.URLParam(r, "sign"))
	if !ok {
		httputil.BadRequest(w, astro.ErrUnknownSign.Error())
		return
	}
	q := r.URL.Query()

	res, err := h.horoscopes.Lookup(sign, horoscope.ParsePeriod(q.Get("period")), horoscope.ParseCategory(q.Get("category")), h.now())
	switch {
	case errors.Is(err, horoscope.ErrNotLoaded):
		httputil.Error(w, http.StatusServiceUnavailable, "Horoscopes are not available yet")
		return
	case errors.Is(err, horoscope.ErrNoEntry):
		httputil.NotFound(w, "No horoscope for this sign")
		return
	case err != nil:
		httputil.InternalError(w, err)
		return
	}

	s, _ := astro.Sign(sign)
	label := ""
	if !res.LastUpdated.IsZero() {
		label = res.LastUpdated.In(belgrade).Format("02.01.2006.")
	}
	httputil.OK(w, horoscopeResponse{Lookup: res, SignName: s.Name, LastUpdatedLabel: label})
}
