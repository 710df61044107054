package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zvezde365/zvezde-api/internal/horoscope"
)

func jsonUnmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

func TestHoroscope(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name      string
		path      string
		text      string
		period    string
		category  string
		freshness string
	}{
		{"default daily general", "/api/horoscopes/leo", "Sjajan dan.", "daily", "general", "fresh"},
		{"serbian name", "/api/horoscopes/Lav?category=love", "Romantika.", "daily", "love", "fresh"},
		{"weekly stale", "/api/horoscopes/leo?period=weekly", "Dobra nedelja.", "weekly", "general", "stale"},
		{"monthly recent", "/api/horoscopes/leo?period=monthly", "Mesec promena.", "monthly", "general", "recent"},
		{"unknown period reads daily", "/api/horoscopes/leo?period=yearly", "Sjajan dan.", "daily", "general", "fresh"},
		{"missing category", "/api/horoscopes/leo?category=career", horoscope.Unavailable, "daily", "career", "fresh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			body := decodeBody(t, rec)
			assert.Equal(t, "leo", body["sign"])
			assert.Equal(t, "Lav", body["signName"])
			assert.Equal(t, tt.text, body["text"])
			assert.Equal(t, tt.period, body["period"])
			assert.Equal(t, tt.category, body["category"])
			assert.Equal(t, tt.freshness, body["freshness"])
		})
	}
}

func TestHoroscopeLabel(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/api/horoscopes/leo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10.03.2025.", decodeBody(t, rec)["lastUpdatedLabel"])
}

func TestHoroscopeErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/horoscopes/ophiuchus", "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/horoscopes/aries", "").Code)

	empty := newTestEnv(t, func(d *Deps) { d.Horoscopes = horoscope.NewStore() })
	assert.Equal(t, http.StatusServiceUnavailable, empty.do(t, http.MethodGet, "/api/horoscopes/leo", "").Code)
}
