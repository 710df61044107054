package relay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBirthTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object with strings", `{"hour":"14","minute":"05"}`, "14:05"},
		{"object with numbers", `{"hour":9,"minute":5}`, "09:05"},
		{"plain string", `"07:30"`, "07:30"},
		{"left blank", `""`, ""},
		{"whitespace", `"  "`, ""},
		{"null", `null`, ""},
		{"empty object", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bt BirthTime
			require.NoError(t, json.Unmarshal([]byte(tt.in), &bt))
			assert.Equal(t, tt.want, bt.String())
		})
	}

	var bt BirthTime
	assert.Error(t, json.Unmarshal([]byte(`"noon"`), &bt))

	var nilTime *BirthTime
	assert.Equal(t, "", nilTime.String())
}

func TestBirthDateUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want BirthDate
	}{
		{"preformatted", `"14.05.1990."`, "14.05.1990."},
		{"timestamp at local midnight", `"1990-05-14T22:00:00.000Z"`, "15.05.1990."},
		{"timestamp in winter", `"1985-01-03T12:00:00Z"`, "03.01.1985."},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d BirthDate
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestEnvelopeDecode(t *testing.T) {
	body := `{
		"formData": {
			"fullName": "Marija Petrović",
			"email": "marija@example.com",
			"birthDate": "14.05.1990.",
			"birthTime": {"hour": "14", "minute": "05"},
			"orderType": "reports",
			"selectedReports": [{"id": "yearly", "name": "Godišnji izveštaj", "price": 3000}],
			"totalPrice": 3000
		},
		"whatsappNumber": "+381601234567"
	}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	require.NotNil(t, env.FormData)
	assert.Equal(t, "14:05", env.FormData.BirthTime.String())
	require.NotNil(t, env.FormData.TotalPrice)
	assert.Equal(t, 3000.0, *env.FormData.TotalPrice)
	assert.Equal(t, "+381601234567", env.WhatsAppNumber)
	assert.Empty(t, env.ToEmail)
}

func TestEnvelopeDecodeBlankBirthTime(t *testing.T) {
	body := `{
		"formData": {
			"fullName": "Jovana",
			"email": "jovana@example.com",
			"birthDate": "14.05.1990.",
			"birthTime": "",
			"birthPlace": "Novi Sad"
		},
		"toEmail": "astrolog@zvezde365.com"
	}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	require.NotNil(t, env.FormData)
	assert.Equal(t, "", env.FormData.BirthTime.String())
	assert.Equal(t, FormNatalChart, InferFormType(env.FormData))
}
