// Package relay turns a website form submission into an operator email
// and sends it through a single esp.Sender.
package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zvezde365/zvezde-api/internal/esp"
	"github.com/zvezde365/zvezde-api/internal/pkg/logger"
)

// ErrMissingFormData is returned when the envelope has no formData.
var ErrMissingFormData = errors.New("Missing form data")

// WhatsAppNotice is echoed back when the envelope names a WhatsApp number.
const WhatsAppNotice = "Notification sent to WhatsApp"

const defaultTimeout = 15 * time.Second

// DispatchError wraps a failed primary send.
type DispatchError struct {
	FormType FormType
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("send %s email: %v", e.FormType, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Detail is the provider's explanation, suitable for an API response.
// A failover chain that failed everywhere yields one "provider: detail"
// entry per provider.
func (e *DispatchError) Detail() string {
	if joined, ok := e.Err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		if len(errs) > 1 {
			parts := make([]string, 0, len(errs))
			for _, err := range errs {
				var perr *esp.ProviderError
				if errors.As(err, &perr) {
					parts = append(parts, perr.Provider+": "+perr.Detail)
					continue
				}
				parts = append(parts, err.Error())
			}
			return strings.Join(parts, "; ")
		}
	}
	var perr *esp.ProviderError
	if errors.As(e.Err, &perr) {
		return perr.Detail
	}
	return e.Err.Error()
}

// Config holds addresses and limits for outbound mail.
type Config struct {
	From             string
	NewsletterFrom   string
	DefaultRecipient string
	SiteName         string
	Timeout          time.Duration
}

// Result describes a relayed submission.
type Result struct {
	EmailID              string   `json:"emailId"`
	FormType             FormType `json:"formType"`
	SubmissionID         string   `json:"submissionId"`
	WhatsAppNotification *string  `json:"whatsappNotification"`
}

// Relay sends form submissions. It holds no per-request state.
type Relay struct {
	sender   esp.Sender
	renderer *Renderer
	cfg      Config
	newID    func() string
}

// New builds a relay around sender.
func New(sender esp.Sender, cfg Config) (*Relay, error) {
	if sender == nil {
		return nil, errors.New("relay: nil sender")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	renderer, err := NewRenderer(cfg.SiteName)
	if err != nil {
		return nil, err
	}
	return &Relay{sender: sender, renderer: renderer, cfg: cfg, newID: uuid.NewString}, nil
}

// Sender returns the underlying sender.
func (r *Relay) Sender() esp.Sender { return r.sender }

// Send relays one submission. The operator email is sent exactly once; a
// newsletter signup additionally gets a welcome email after that send
// succeeds. A failed welcome email is logged and does not fail the call.
func (r *Relay) Send(ctx context.Context, env Envelope) (*Result, error) {
	fd := env.FormData
	if fd == nil {
		return nil, ErrMissingFormData
	}

	ft := InferFormType(fd)
	submissionID := r.newID()

	rendered, err := r.renderer.Render(ft, fd)
	if err != nil {
		return nil, err
	}

	msg := &esp.Message{
		From:    r.cfg.From,
		To:      []string{r.recipient(env)},
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Tags:    map[string]string{"form_type": string(ft), "submission_id": submissionID},
	}
	if fd.Email != "" {
		if ft.copiesSubmitter() {
			msg.CC = []string{fd.Email}
		}
		if ft.repliesToSubmitter() {
			msg.ReplyTo = []string{fd.Email}
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	res, err := r.sender.Send(sendCtx, msg)
	cancel()
	if err != nil {
		logger.Error("submission email failed",
			"form_type", ft, "submission_id", submissionID, "provider", r.sender.Name(), "error", err)
		return nil, &DispatchError{FormType: ft, Err: err}
	}

	logger.Info("submission relayed",
		"form_type", ft, "submission_id", submissionID, "provider", res.Provider, "message_id", res.MessageID)

	if ft == FormNewsletter {
		r.confirmSubscription(ctx, fd.Email, submissionID)
	}

	out := &Result{EmailID: res.MessageID, FormType: ft, SubmissionID: submissionID}
	if env.WhatsAppNumber != "" {
		notice := WhatsAppNotice
		out.WhatsAppNotification = &notice
	}
	return out, nil
}

func (r *Relay) recipient(env Envelope) string {
	if env.ToEmail != "" {
		return env.ToEmail
	}
	return r.cfg.DefaultRecipient
}

func (r *Relay) confirmSubscription(ctx context.Context, subscriber, submissionID string) {
	if subscriber == "" {
		logger.Warn("newsletter confirmation skipped: no subscriber email", "submission_id", submissionID)
		return
	}

	rendered, err := r.renderer.RenderConfirmation()
	if err != nil {
		logger.Warn("newsletter confirmation not rendered", "submission_id", submissionID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	_, err = r.sender.Send(ctx, &esp.Message{
		From:    r.cfg.NewsletterFrom,
		To:      []string{subscriber},
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Tags:    map[string]string{"form_type": "newsletter_confirmation", "submission_id": submissionID},
	})
	if err != nil {
		logger.Warn("newsletter confirmation failed",
			"submission_id", submissionID, "subscriber_email", subscriber, "error", err)
	}
}
