package relay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // Europe/Belgrade for birth dates sent as timestamps
)

// FormType is the submission category. It selects the email template.
type FormType string

const (
	FormNatalChart   FormType = "natalChart"
	FormReports      FormType = "reports"
	FormConsultation FormType = "consultation"
	FormContact      FormType = "contact"
	FormNewsletter   FormType = "newsletter"
)

// Envelope is the wire contract between the site's forms and the relay.
type Envelope struct {
	FormData       *FormData `json:"formData"`
	ToEmail        string    `json:"toEmail,omitempty"`
	WhatsAppNumber string    `json:"whatsappNumber,omitempty"`
}

// FormData is the union of every form's fields. Which fields are set
// depends on the form; Email is always present.
type FormData struct {
	FullName   string     `json:"fullName,omitempty"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Gender     string     `json:"gender,omitempty"`
	BirthDate  BirthDate  `json:"birthDate,omitempty"`
	BirthTime  *BirthTime `json:"birthTime,omitempty"`
	BirthPlace string     `json:"birthPlace,omitempty"`

	OrderType       string       `json:"orderType,omitempty"`
	SelectedReports []ReportLine `json:"selectedReports,omitempty"`
	TotalPrice      *float64     `json:"totalPrice,omitempty"`
	ReportTypes     []string     `json:"reportTypes,omitempty"`

	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`

	FormType             string `json:"formType,omitempty"`
	ConsultationType     string `json:"consultationType,omitempty"`
	ConsultationTypeName string `json:"consultationTypeName,omitempty"`
	Notes                string `json:"notes,omitempty"`
}

// ReportLine is one ordered report as priced by the order form.
type ReportLine struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// birthDateLocation is where the site's visitors enter their dates. A
// timestamp such as 1990-05-14T22:00:00Z is the 15th there.
var birthDateLocation = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Belgrade")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// BirthDate holds the display form of a birth date. Forms send either a
// preformatted string ("14.05.1990.") or a JSON timestamp.
type BirthDate string

func (d *BirthDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("birthDate: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*d = BirthDate(t.In(birthDateLocation).Format("02.01.2006."))
		return nil
	}
	*d = BirthDate(s)
	return nil
}

// BirthTime is an hour and minute as entered in the form.
type BirthTime struct {
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
}

// String renders "HH:MM", or "" when no time was given.
func (t *BirthTime) String() string {
	if t == nil || (t.Hour == "" && t.Minute == "") {
		return ""
	}
	return t.Hour + ":" + t.Minute
}

// UnmarshalJSON accepts {"hour":"14","minute":"05"}, numeric parts, or "14:05".
// The natal chart form sends "" when the time is left blank; that and null
// mean no time.
func (t *BirthTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = BirthTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*t = BirthTime{}
			return nil
		}
		hour, minute, ok := strings.Cut(s, ":")
		if !ok {
			return fmt.Errorf("birthTime: %q is not HH:MM", s)
		}
		t.Hour, t.Minute = strings.TrimSpace(hour), strings.TrimSpace(minute)
		return nil
	}

	var raw struct {
		Hour   json.RawMessage `json:"hour"`
		Minute json.RawMessage `json:"minute"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("birthTime: %w", err)
	}
	var err error
	if t.Hour, err = clockPart(raw.Hour); err != nil {
		return fmt.Errorf("birthTime.hour: %w", err)
	}
	if t.Minute, err = clockPart(raw.Minute); err != nil {
		return fmt.Errorf("birthTime.minute: %w", err)
	}
	return nil
}

// clockPart passes strings through and zero-pads numbers.
func clockPart(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	i, err := strconv.Atoi(n.String())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d", i), nil
}
