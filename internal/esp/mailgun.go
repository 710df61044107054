package esp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zvezde365/zvezde-api/internal/pkg/logger"
)

// MailgunSender sends through the Mailgun Messages API.
type MailgunSender struct {
	apiKey  string
	domain  string
	baseURL string
	client  *http.Client
}

// NewMailgunSender creates a Mailgun sender for domain.
func NewMailgunSender(apiKey, domain, baseURL string, client *http.Client) *MailgunSender {
	if baseURL == "" {
		baseURL = "https://api.eu.mailgun.net/v3"
	}
	return &MailgunSender{
		apiKey:  apiKey,
		domain:  domain,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClientOrDefault(client),
	}
}

func (s *MailgunSender) Name() string { return "mailgun" }

// Send posts a form-encoded message to /{domain}/messages.
func (s *MailgunSender) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if s.apiKey == "" || s.domain == "" {
		return nil, &ProviderError{Provider: s.Name(), Detail: "Mailgun API key or domain not configured"}
	}
	if err := validate(s.Name(), msg); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Add("from", msg.From)
	for _, to := range msg.To {
		form.Add("to", to)
	}
	for _, cc := range msg.CC {
		form.Add("cc", cc)
	}
	form.Add("subject", msg.Subject)
	form.Add("html", msg.HTML)
	if msg.Text != "" {
		form.Add("text", msg.Text)
	}
	if len(msg.ReplyTo) > 0 {
		form.Add("h:Reply-To", strings.Join(msg.ReplyTo, ", "))
	}
	for k, v := range msg.Tags {
		form.Add("v:"+k, v)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", s.baseURL, s.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, transportError(s.Name(), err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	var result struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode >= 400 {
		detail := truncate(string(body), 512)
		if decodeErr == nil && result.Message != "" {
			detail = result.Message
		}
		return nil, &ProviderError{Provider: s.Name(), StatusCode: resp.StatusCode, Detail: detail}
	}
	if decodeErr != nil {
		return nil, &ProviderError{Provider: s.Name(), StatusCode: resp.StatusCode, Detail: "unreadable response", Err: decodeErr}
	}

	messageID := strings.Trim(result.ID, "<>")
	logger.Info("email accepted", "provider", s.Name(), "to", strings.Join(msg.To, ","), "message_id", messageID)

	return &SendResult{MessageID: messageID, Provider: s.Name(), SentAt: time.Now()}, nil
}
