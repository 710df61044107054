package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferFormType(t *testing.T) {
	tests := []struct {
		name string
		fd   FormData
		want FormType
	}{
		{"explicit newsletter", FormData{FormType: "newsletter"}, FormNewsletter},
		{"explicit beats order type", FormData{FormType: "consultation", OrderType: "reports"}, FormConsultation},
		{"reports order", FormData{OrderType: "reports", BirthDate: "14.05.1990."}, FormReports},
		{"birth date means natal chart", FormData{BirthDate: "14.05.1990."}, FormNatalChart},
		{"natal order type alone is not enough", FormData{OrderType: "natalChart"}, FormContact},
		{"contact by default", FormData{Subject: "Pitanje", Message: "Zdravo"}, FormContact},
		// Without an explicit tag these two cannot be told apart from contact.
		{"untagged newsletter", FormData{Email: "a@example.com"}, FormContact},
		{"untagged consultation", FormData{ConsultationType: "career"}, FormContact},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferFormType(&tt.fd))
		})
	}
}
