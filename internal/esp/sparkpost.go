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

// SparkPostSender sends through the SparkPost Transmissions API.
type SparkPostSender struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewSparkPostSender creates a sender targeting the SparkPost v1 API.
func NewSparkPostSender(apiKey, baseURL string, client *http.Client) *SparkPostSender {
	if baseURL == "" {
		baseURL = "https://api.sparkpost.com/api/v1"
	}
	return &SparkPostSender{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClientOrDefault(client),
	}
}

func (s *SparkPostSender) Name() string { return "sparkpost" }

// Send creates one transmission. CC recipients are added with header_to
// pointing at the primary recipients, which is how SparkPost models carbon copies.
func (s *SparkPostSender) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if s.apiKey == "" {
		return nil, &ProviderError{Provider: s.Name(), Detail: "SparkPost API key not configured"}
	}
	if err := validate(s.Name(), msg); err != nil {
		return nil, err
	}

	headerTo := strings.Join(msg.To, ",")
	recipients := make([]map[string]interface{}, 0, len(msg.To)+len(msg.CC))
	for _, to := range msg.To {
		recipients = append(recipients, map[string]interface{}{
			"address": map[string]string{"email": to},
		})
	}
	for _, cc := range msg.CC {
		recipients = append(recipients, map[string]interface{}{
			"address": map[string]string{"email": cc, "header_to": headerTo},
		})
	}

	content := map[string]interface{}{
		"from":    msg.From,
		"subject": msg.Subject,
		"html":    msg.HTML,
	}
	if msg.Text != "" {
		content["text"] = msg.Text
	}
	if len(msg.ReplyTo) > 0 {
		content["reply_to"] = msg.ReplyTo[0]
	}
	if len(msg.CC) > 0 {
		content["headers"] = map[string]string{"CC": strings.Join(msg.CC, ",")}
	}

	transmission := map[string]interface{}{
		"recipients": recipients,
		"content":    content,
	}
	if len(msg.Tags) > 0 {
		transmission["metadata"] = msg.Tags
	}

	jsonData, err := json.Marshal(transmission)
	if err != nil {
		return nil, fmt.Errorf("marshal transmission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/transmissions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, transportError(s.Name(), err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Errors []struct {
				Message     string `json:"message"`
				Description string `json:"description"`
			} `json:"errors"`
		}
		detail := truncate(string(body), 512)
		if json.Unmarshal(body, &apiErr) == nil && len(apiErr.Errors) > 0 {
			detail = apiErr.Errors[0].Message
			if d := apiErr.Errors[0].Description; d != "" {
				detail += ": " + d
			}
		}
		return nil, &ProviderError{Provider: s.Name(), StatusCode: resp.StatusCode, Detail: detail}
	}

	var result struct {
		Results struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ProviderError{Provider: s.Name(), StatusCode: resp.StatusCode, Detail: "unreadable response", Err: err}
	}

	logger.Info("email accepted", "provider", s.Name(), "to", headerTo, "message_id", result.Results.ID)

	return &SendResult{MessageID: result.Results.ID, Provider: s.Name(), SentAt: time.Now()}, nil
}
