package esp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zvezde365/zvezde-api/internal/pkg/logger"
)

// ResendSender sends through the Resend REST API.
type ResendSender struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewResendSender creates a Resend sender. A nil client gets a 30s timeout.
func NewResendSender(apiKey, baseURL string, client *http.Client) *ResendSender {
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	return &ResendSender{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClientOrDefault(client),
	}
}

func (s *ResendSender) Name() string { return "resend" }

type resendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type resendEmail struct {
	From    string      `json:"from"`
	To      []string    `json:"to"`
	CC      []string    `json:"cc,omitempty"`
	ReplyTo []string    `json:"reply_to,omitempty"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html"`
	Text    string      `json:"text,omitempty"`
	Tags    []resendTag `json:"tags,omitempty"`
}

// Send posts a single email to /emails.
func (s *ResendSender) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if s.apiKey == "" {
		return nil, &ProviderError{Provider: s.Name(), Detail: "Resend API key not configured"}
	}
	if err := validate(s.Name(), msg); err != nil {
		return nil, err
	}

	payload := resendEmail{
		From:    msg.From,
		To:      msg.To,
		CC:      msg.CC,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	for k, v := range msg.Tags {
		payload.Tags = append(payload.Tags, resendTag{Name: k, Value: v})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, transportError(s.Name(), err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
			Name    string `json:"name"`
		}
		detail := truncate(string(respBody), 512)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			detail = apiErr.Message
		}
		return nil, &ProviderError{Provider: s.Name(), StatusCode: resp.StatusCode, Detail: detail}
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &ProviderError{Provider: s.Name(), StatusCode: resp.StatusCode, Detail: "unreadable response", Err: err}
	}

	logger.Info("email accepted", "provider", s.Name(), "to", strings.Join(msg.To, ","), "message_id", result.ID)

	return &SendResult{MessageID: result.ID, Provider: s.Name(), SentAt: time.Now()}, nil
}
