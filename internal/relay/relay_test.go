package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zvezde365/zvezde-api/internal/esp"
	"github.com/zvezde365/zvezde-api/internal/esp/esptest"
)

func testConfig() Config {
	return Config{
		From:             "Zvezde365 <narudzbine@zvezde365.com>",
		NewsletterFrom:   "Zvezde365 <newsletter@zvezde365.com>",
		DefaultRecipient: "info@zvezde365.com",
		SiteName:         "zvezde365.com",
		Timeout:          time.Second,
	}
}

func newTestRelay(t *testing.T, sender esp.Sender) *Relay {
	t.Helper()
	r, err := New(sender, testConfig())
	require.NoError(t, err)
	r.newID = func() string { return "sub-1" }
	return r
}

func TestSendMissingFormData(t *testing.T) {
	sender := esptest.New("fake")
	_, err := newTestRelay(t, sender).Send(context.Background(), Envelope{ToEmail: "x@example.com"})

	require.ErrorIs(t, err, ErrMissingFormData)
	assert.Equal(t, "Missing form data", err.Error())
	assert.Zero(t, sender.Calls())
}

func TestSendNatalChart(t *testing.T) {
	sender := esptest.New("fake")
	res, err := newTestRelay(t, sender).Send(context.Background(), Envelope{
		FormData: &FormData{
			FullName:  "Marija",
			Email:     "marija@example.com",
			BirthDate: "14.05.1990.",
			BirthTime: &BirthTime{Hour: "14", Minute: "05"},
		},
		ToEmail: "astrolog@zvezde365.com",
	})
	require.NoError(t, err)

	assert.Equal(t, FormNatalChart, res.FormType)
	assert.Equal(t, "fake-1", res.EmailID)
	assert.Equal(t, "sub-1", res.SubmissionID)
	assert.Nil(t, res.WhatsAppNotification)

	msgs := sender.Messages()
	require.Len(t, msgs, 1)
	m := msgs[0]
	assert.Equal(t, "Zvezde365 <narudzbine@zvezde365.com>", m.From)
	assert.Equal(t, []string{"astrolog@zvezde365.com"}, m.To)
	assert.Equal(t, []string{"marija@example.com"}, m.CC)
	assert.Equal(t, []string{"marija@example.com"}, m.ReplyTo)
	assert.Equal(t, "Nova narudžbina natalne karte - Marija", m.Subject)
	assert.Equal(t, "natalChart", m.Tags["form_type"])
}

func TestSendReportsToDefaultRecipient(t *testing.T) {
	sender := esptest.New("fake")
	res, err := newTestRelay(t, sender).Send(context.Background(), Envelope{
		FormData: &FormData{FullName: "Ana", Email: "ana@example.com", OrderType: "reports", ReportTypes: []string{"yearly"}},
	})
	require.NoError(t, err)
	assert.Equal(t, FormReports, res.FormType)

	m := sender.Messages()[0]
	assert.Equal(t, []string{"info@zvezde365.com"}, m.To)
	assert.Equal(t, []string{"ana@example.com"}, m.CC)
}

func TestSendContactHasReplyToButNoCC(t *testing.T) {
	sender := esptest.New("fake")
	res, err := newTestRelay(t, sender).Send(context.Background(), Envelope{
		FormData:       &FormData{FullName: "Ana", Email: "ana@example.com", Subject: "Pitanje", Message: "Zdravo"},
		WhatsAppNumber: "+381601234567",
	})
	require.NoError(t, err)
	assert.Equal(t, FormContact, res.FormType)
	require.NotNil(t, res.WhatsAppNotification)
	assert.Equal(t, "Notification sent to WhatsApp", *res.WhatsAppNotification)

	m := sender.Messages()[0]
	assert.Empty(t, m.CC)
	assert.Equal(t, []string{"ana@example.com"}, m.ReplyTo)
}

func TestSendNewsletterSendsConfirmation(t *testing.T) {
	sender := esptest.New("fake")
	res, err := newTestRelay(t, sender).Send(context.Background(), Envelope{
		FormData: &FormData{Email: "novi@example.com", FormType: "newsletter"},
	})
	require.NoError(t, err)
	assert.Equal(t, FormNewsletter, res.FormType)
	assert.Equal(t, "fake-1", res.EmailID)

	msgs := sender.Messages()
	require.Len(t, msgs, 2)

	operator := msgs[0]
	assert.Equal(t, []string{"info@zvezde365.com"}, operator.To)
	assert.Empty(t, operator.CC)
	assert.Empty(t, operator.ReplyTo)
	assert.Equal(t, "Nova pretplata na newsletter - novi@example.com", operator.Subject)

	confirmation := msgs[1]
	assert.Equal(t, "Zvezde365 <newsletter@zvezde365.com>", confirmation.From)
	assert.Equal(t, []string{"novi@example.com"}, confirmation.To)
	assert.Equal(t, "Potvrda pretplate na zvezde365.com newsletter", confirmation.Subject)
}

func TestSendNewsletterConfirmationFailureIsSwallowed(t *testing.T) {
	sender := esptest.New("fake").FailOn(1, errors.New("mailbox full"))
	res, err := newTestRelay(t, sender).Send(context.Background(), Envelope{
		FormData: &FormData{Email: "novi@example.com", FormType: "newsletter"},
	})
	require.NoError(t, err)
	assert.Equal(t, "fake-1", res.EmailID)
	assert.Equal(t, 2, sender.Calls())
}

func TestSendFailureSkipsConfirmation(t *testing.T) {
	perr := &esp.ProviderError{Provider: "fake", StatusCode: 403, Detail: "The domain is not verified"}
	sender := esptest.New("fake").FailOn(0, perr)

	_, err := newTestRelay(t, sender).Send(context.Background(), Envelope{
		FormData: &FormData{Email: "novi@example.com", FormType: "newsletter"},
	})
	require.Error(t, err)

	var derr *DispatchError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, FormNewsletter, derr.FormType)
	assert.Equal(t, "The domain is not verified", derr.Detail())
	assert.ErrorIs(t, err, perr)
	assert.Equal(t, 1, sender.Calls())
}

func TestSendFailoverDetailNamesEveryProvider(t *testing.T) {
	primary := esptest.New("resend").FailOn(0, &esp.ProviderError{Provider: "resend", StatusCode: 422, Detail: "invalid from address"})
	backup := esptest.New("ses").FailOn(0, &esp.ProviderError{Provider: "ses", StatusCode: 400, Detail: "email address is not verified"})

	_, err := newTestRelay(t, esp.NewFailoverSender(primary, backup)).Send(context.Background(), Envelope{
		FormData: &FormData{Email: "ana@example.com", Message: "Zdravo"},
	})

	var derr *DispatchError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "resend: invalid from address; ses: email address is not verified", derr.Detail())
	assert.Equal(t, 1, primary.Calls())
	assert.Equal(t, 1, backup.Calls())
}

func TestSendIsBoundedByTimeout(t *testing.T) {
	sender := esptest.New("slow").Delay(time.Minute)
	r := newTestRelay(t, sender)
	r.cfg.Timeout = 20 * time.Millisecond

	start := time.Now()
	_, err := r.Send(context.Background(), Envelope{FormData: &FormData{Email: "a@example.com"}})

	var derr *DispatchError
	require.True(t, errors.As(err, &derr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewRequiresSender(t *testing.T) {
	_, err := New(nil, testConfig())
	assert.Error(t, err)
}
