package horoscope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zvezde365/zvezde-api/internal/astro"
)

const jsonDoc = `{
  "lastUpdated": "2025-03-10T06:00:00.000Z",
  "horoscopes": [
    {
      "id": "aries",
      "daily":   {"text": "Dan za akciju.", "love": "Iskrenost pomaže.", "health": "", "career": "Nova ponuda.", "lastUpdated": "2025-03-10T06:00:00.000Z"},
      "weekly":  {"text": "Nedelja izazova.", "lastUpdated": "2025-03-09T06:00:00.000Z"},
      "monthly": {"text": "Mesec rasta.", "lastUpdated": "2025-03-01T06:00:00.000Z"}
    }
  ]
}`

const yamlDoc = `
lastUpdated: 2025-03-10
horoscopes:
  - id: Škorpija
    daily:
      text: Intuicija vas vodi.
      lastUpdated: 2025-03-10T06:00:00Z
    weekly:
      text: Duboki razgovori.
      lastUpdated: "2025-03-09 06:00:00"
    monthly:
      text: Transformacija.
`

func TestDecodeJSON(t *testing.T) {
	doc, err := Decode([]byte(jsonDoc))
	require.NoError(t, err)
	require.Len(t, doc.Horoscopes, 1)

	assert.Equal(t, time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), doc.LastUpdated.UTC())
	e := doc.Horoscopes[0]
	assert.Equal(t, astro.Aries, e.Sign)
	assert.Equal(t, "Nova ponuda.", e.Daily.Career)
	assert.Equal(t, time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC), e.Monthly.LastUpdated.UTC())
}

func TestDecodeYAML(t *testing.T) {
	doc, err := Decode([]byte(yamlDoc))
	require.NoError(t, err)
	require.Len(t, doc.Horoscopes, 1)

	e := doc.Horoscopes[0]
	assert.Equal(t, astro.Scorpio, e.Sign)
	assert.Equal(t, time.Date(2025, 3, 9, 6, 0, 0, 0, time.UTC), e.Weekly.LastUpdated.UTC())
	assert.True(t, e.Monthly.LastUpdated.IsZero())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"not a document", "- just\n- a list\n", "decoding horoscope document"},
		{"no entries", `{"horoscopes": []}`, "no entries"},
		{"unknown sign", `{"horoscopes": [{"id": "ophiuchus"}]}`, "unknown zodiac sign"},
		{"duplicate sign", `{"horoscopes": [{"id": "leo"}, {"id": "Lav"}]}`, "duplicate sign"},
		{"bad timestamp", `{"horoscopes": [{"id": "leo", "daily": {"lastUpdated": "yesterday"}}]}`, "leo daily"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParsePeriodAndCategory(t *testing.T) {
	assert.Equal(t, Weekly, ParsePeriod(" Weekly"))
	assert.Equal(t, Monthly, ParsePeriod("monthly"))
	assert.Equal(t, Daily, ParsePeriod("yearly"))
	assert.Equal(t, Daily, ParsePeriod(""))

	assert.Equal(t, Love, ParseCategory("LOVE"))
	assert.Equal(t, Career, ParseCategory("career"))
	assert.Equal(t, General, ParseCategory("finance"))
}

func TestFreshnessOf(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		period  Period
		updated time.Time
		want    Freshness
	}{
		{"same hour", Daily, now, Fresh},
		{"23h ago", Daily, now.Add(-23 * time.Hour), Fresh},
		{"daily one day", Daily, now.Add(-36 * time.Hour), Recent},
		{"daily two days", Daily, now.Add(-48 * time.Hour), Stale},
		{"weekly seven days", Weekly, now.AddDate(0, 0, -7), Recent},
		{"weekly eight days", Weekly, now.AddDate(0, 0, -8), Stale},
		{"monthly thirty days", Monthly, now.AddDate(0, 0, -30), Recent},
		{"monthly thirty one days", Monthly, now.AddDate(0, 0, -31), Stale},
		{"future", Daily, now.Add(72 * time.Hour), Recent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FreshnessOf(tt.period, tt.updated, now))
		})
	}
}

func TestReadingCategoryFallback(t *testing.T) {
	r := Reading{Text: "Opšte.", Love: "Ljubav.", Health: "  "}
	assert.Equal(t, "Opšte.", r.Category(General))
	assert.Equal(t, "Ljubav.", r.Category(Love))
	assert.Equal(t, Unavailable, r.Category(Health))
	assert.Equal(t, Unavailable, r.Category(Career))
	assert.Equal(t, Unavailable, Reading{}.Category(General))
}
