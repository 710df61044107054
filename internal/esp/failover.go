package esp

import (
	"context"
	"errors"
	"strings"

	"github.com/zvezde365/zvezde-api/internal/pkg/logger"
)

// FailoverSender tries each sender in order and returns the first success.
// Every sender gets at most one attempt per message.
type FailoverSender struct {
	senders []Sender
}

// NewFailoverSender wraps senders in priority order.
func NewFailoverSender(senders ...Sender) *FailoverSender {
	return &FailoverSender{senders: senders}
}

// Name lists the chain, e.g. "resend>ses".
func (f *FailoverSender) Name() string {
	names := make([]string, len(f.senders))
	for i, s := range f.senders {
		names[i] = s.Name()
	}
	return strings.Join(names, ">")
}

// Send stops at the first provider that accepts the message, or when ctx
// is done. When all fail the joined error keeps every provider's detail.
func (f *FailoverSender) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if len(f.senders) == 0 {
		return nil, &ProviderError{Provider: "failover", Detail: "no providers configured"}
	}

	var errs []error
	for i, s := range f.senders {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		res, err := s.Send(ctx, msg)
		if err == nil {
			return res, nil
		}
		errs = append(errs, err)

		if i < len(f.senders)-1 {
			logger.Warn("email provider failed, trying next",
				"provider", s.Name(), "next", f.senders[i+1].Name(), "error", err)
		}
	}
	return nil, errors.Join(errs...)
}
