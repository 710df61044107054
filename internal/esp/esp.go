// Package esp adapts outbound email providers to a single Sender
// interface. Each adapter performs exactly one provider call per Send and
// never retries; FailoverSender is the only place a message can reach a
// second provider.
package esp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Sender delivers one message through one provider call.
type Sender interface {
	Send(ctx context.Context, msg *Message) (*SendResult, error)
	Name() string
}

// Message is a provider-neutral outbound email. From is a display address
// such as "Zvezde365 <info@zvezde365.com>".
type Message struct {
	From    string
	To      []string
	CC      []string
	ReplyTo []string
	Subject string
	HTML    string
	Text    string
	Tags    map[string]string
}

// SendResult describes an accepted message.
type SendResult struct {
	MessageID string
	Provider  string
	SentAt    time.Time
}

// ProviderError is returned when a provider rejects a message or cannot be
// reached. StatusCode is zero for transport failures.
type ProviderError struct {
	Provider   string
	StatusCode int
	Detail     string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Detail)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func transportError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Detail: err.Error(), Err: err}
}

func validate(provider string, msg *Message) error {
	switch {
	case msg == nil:
		return &ProviderError{Provider: provider, Detail: "nil message"}
	case msg.From == "":
		return &ProviderError{Provider: provider, Detail: "missing sender address"}
	case len(msg.To) == 0:
		return &ProviderError{Provider: provider, Detail: "missing recipient"}
	}
	return nil
}

const defaultHTTPTimeout = 30 * time.Second

func httpClientOrDefault(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// truncate keeps provider error bodies readable in logs and responses.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
