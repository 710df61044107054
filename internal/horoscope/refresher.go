package horoscope

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zvezde365/zvezde-api/internal/pkg/logger"
)

const defaultDebounce = 100 * time.Millisecond

// Refresher keeps a Store loaded from a Source. It reloads on a fixed
// interval and, when a watch path is set, shortly after the file changes.
// A failed load leaves the store's current document in place.
type Refresher struct {
	source    Source
	store     *Store
	interval  time.Duration
	watchPath string
	debounce  time.Duration

	mu          sync.Mutex
	lastAttempt time.Time
	lastErr     error
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithInterval reloads every d. Zero disables periodic reloads.
func WithInterval(d time.Duration) Option {
	return func(r *Refresher) { r.interval = d }
}

// WithWatch reloads when the file at path is written or recreated.
func WithWatch(path string) Option {
	return func(r *Refresher) { r.watchPath = path }
}

// WithDebounce sets how long file events must settle before a reload.
func WithDebounce(d time.Duration) Option {
	return func(r *Refresher) {
		if d > 0 {
			r.debounce = d
		}
	}
}

// NewRefresher binds source to store.
func NewRefresher(source Source, store *Store, opts ...Option) *Refresher {
	r := &Refresher{source: source, store: store, debounce: defaultDebounce}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh loads the source once and swaps the result into the store.
func (r *Refresher) Refresh(ctx context.Context) error {
	doc, err := r.source.Load(ctx)

	r.mu.Lock()
	r.lastAttempt = time.Now()
	r.lastErr = err
	r.mu.Unlock()

	if err != nil {
		return fmt.Errorf("loading horoscopes from %s: %w", r.source.Name(), err)
	}
	r.store.Replace(doc)
	logger.Info("horoscopes loaded", "source", r.source.Name(), "signs", len(doc.Horoscopes))
	return nil
}

// Status returns the time and error of the last load attempt.
func (r *Refresher) Status() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastAttempt, r.lastErr
}

// Run loads once, then keeps reloading until ctx is cancelled. It always
// returns nil after cancellation; load failures are logged.
func (r *Refresher) Run(ctx context.Context) error {
	r.refreshLogged(ctx, "startup")

	var tick <-chan time.Time
	if r.interval > 0 {
		t := time.NewTicker(r.interval)
		defer t.Stop()
		tick = t.C
	}

	var (
		events  <-chan fsnotify.Event
		errs    <-chan error
		settle  <-chan time.Time
		pending time.Time
	)
	if r.watchPath != "" {
		w, err := r.watch()
		if err != nil {
			logger.Warn("horoscope file watch disabled", "path", r.watchPath, "error", err)
		} else {
			defer w.Close()
			events, errs = w.Events, w.Errors

			t := time.NewTicker(r.debounce)
			defer t.Stop()
			settle = t.C
		}
	}

	target := filepath.Clean(r.watchPath)
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-tick:
			r.refreshLogged(ctx, "interval")

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-settle:
			if !pending.IsZero() && time.Since(pending) >= r.debounce {
				pending = time.Time{}
				r.refreshLogged(ctx, "file change")
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("horoscope file watch error", "error", err)
		}
	}
}

// watch subscribes to the file's directory so that editors which replace
// the file by rename are still seen.
func (r *Refresher) watch() (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(r.watchPath)); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (r *Refresher) refreshLogged(ctx context.Context, reason string) {
	if err := r.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Warn("horoscope refresh failed, keeping previous content", "reason", reason, "error", err)
	}
}
