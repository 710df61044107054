package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/zvezde365/zvezde-api/internal/pkg/httputil"
	"github.com/zvezde365/zvezde-api/internal/pkg/logger"
	"github.com/zvezde365/zvezde-api/internal/relay"
)

type sendEmailResponse struct {
	Message string `json:"message"`
	*relay.Result
}

type newsletterResponse struct {
	Message    string `json:"message"`
	Subscribed bool   `json:"subscribed"`
	*relay.Result
}

// SendEmail relays a website form submission.
//
//	POST /send-email
//	POST /api/send-email
func (h *Handlers) SendEmail(w http.ResponseWriter, r *http.Request) {
	var env relay.Envelope
	if !httputil.Decode(w, r, &env) {
		return
	}

	res, ok := h.send(w, r, env)
	if !ok {
		return
	}
	httputil.OK(w, sendEmailResponse{Message: "Email sent successfully", Result: res})
}

// NewsletterSubscribe relays a newsletter signup to the default recipient.
//
//	POST /api/newsletter-subscribe
func (h *Handlers) NewsletterSubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !httputil.Decode(w, r, &req) {
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		httputil.BadRequest(w, "Email address is required")
		return
	}

	env := relay.Envelope{FormData: &relay.FormData{Email: email, FormType: string(relay.FormNewsletter)}}
	res, ok := h.send(w, r, env)
	if !ok {
		return
	}
	httputil.OK(w, newsletterResponse{
		Message:    "Successfully subscribed to newsletter",
		Subscribed: true,
		Result:     res,
	})
}

// send runs the relay and writes the error response itself on failure.
func (h *Handlers) send(w http.ResponseWriter, r *http.Request, env relay.Envelope) (*relay.Result, bool) {
	if h.relay == nil {
		httputil.ErrorWithDetails(w, http.StatusInternalServerError, "Failed to send email", "email sending is not configured")
		return nil, false
	}

	res, err := h.relay.Send(r.Context(), env)
	if err == nil {
		return res, true
	}

	var dispatchErr *relay.DispatchError
	switch {
	case errors.Is(err, relay.ErrMissingFormData):
		httputil.BadRequest(w, err.Error())
	case errors.As(err, &dispatchErr):
		httputil.ErrorWithDetails(w, http.StatusInternalServerError, "Failed to send email", dispatchErr.Detail())
	default:
		logger.Error("relay failed", "error", err)
		httputil.ErrorWithDetails(w, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return nil, false
}
