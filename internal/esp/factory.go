package esp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/zvezde365/zvezde-api/internal/config"
)

// New builds the configured provider, wrapped in a FailoverSender when
// fallback providers are listed. Duplicate providers are dropped so the
// same provider never sees a message twice.
func New(ctx context.Context, cfg *config.Config, client *http.Client) (Sender, error) {
	names := append([]string{cfg.Email.Provider}, cfg.Email.FallbackProviders...)

	seen := make(map[string]bool, len(names))
	var senders []Sender
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		s, err := newProvider(ctx, name, cfg, client)
		if err != nil {
			return nil, err
		}
		senders = append(senders, s)
	}

	switch len(senders) {
	case 0:
		return nil, fmt.Errorf("no email provider configured")
	case 1:
		return senders[0], nil
	default:
		return NewFailoverSender(senders...), nil
	}
}

func newProvider(ctx context.Context, name string, cfg *config.Config, client *http.Client) (Sender, error) {
	switch name {
	case "resend":
		return NewResendSender(cfg.Resend.APIKey, cfg.Resend.BaseURL, client), nil
	case "ses":
		s, err := NewSESSender(ctx, cfg.SES.AccessKey, cfg.SES.SecretKey, cfg.SES.Region)
		if err != nil {
			return nil, fmt.Errorf("ses sender: %w", err)
		}
		return s, nil
	case "sparkpost":
		return NewSparkPostSender(cfg.SparkPost.APIKey, cfg.SparkPost.BaseURL, client), nil
	case "mailgun":
		return NewMailgunSender(cfg.Mailgun.APIKey, cfg.Mailgun.Domain, cfg.Mailgun.BaseURL, client), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", name)
	}
}
