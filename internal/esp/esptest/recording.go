// Package esptest provides an in-memory esp.Sender for tests.
package esptest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zvezde365/zvezde-api/internal/esp"
)

// RecordingSender records every message it is asked to send. Failures can
// be scripted per call index with FailOn.
type RecordingSender struct {
	mu       sync.Mutex
	name     string
	messages []esp.Message
	failOn   map[int]error
	delay    time.Duration
}

// New returns a sender reporting name from Name().
func New(name string) *RecordingSender {
	return &RecordingSender{name: name, failOn: make(map[int]error)}
}

// FailOn makes the call with the given zero-based index return err.
func (r *RecordingSender) FailOn(call int, err error) *RecordingSender {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failOn[call] = err
	return r
}

// Delay makes every Send block for d or until ctx is done.
func (r *RecordingSender) Delay(d time.Duration) *RecordingSender {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delay = d
	return r
}

func (r *RecordingSender) Name() string { return r.name }

func (r *RecordingSender) Send(ctx context.Context, msg *esp.Message) (*esp.SendResult, error) {
	r.mu.Lock()
	call := len(r.messages)
	r.messages = append(r.messages, *msg)
	err := r.failOn[call]
	delay := r.delay
	r.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, &esp.ProviderError{Provider: r.name, Detail: ctx.Err().Error(), Err: ctx.Err()}
		}
	}
	if err != nil {
		return nil, err
	}
	return &esp.SendResult{
		MessageID: fmt.Sprintf("%s-%d", r.name, call+1),
		Provider:  r.name,
		SentAt:    time.Now(),
	}, nil
}

// Messages returns a copy of everything sent so far.
func (r *RecordingSender) Messages() []esp.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]esp.Message(nil), r.messages...)
}

// Calls is the number of Send invocations.
func (r *RecordingSender) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}
