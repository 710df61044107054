package horoscope

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zvezde365/zvezde-api/internal/astro"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type scriptedSource struct {
	mu    sync.Mutex
	docs  []*Document
	errs  []error
	calls int
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Load(context.Context) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.docs) {
		return s.docs[i], nil
	}
	return s.docs[len(s.docs)-1], nil
}

func (s *scriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func runRefresher(t *testing.T, r *Refresher) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	return func() {
		stop()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("refresher did not stop")
		}
	}
}

func TestRefreshKeepsPreviousDocumentOnError(t *testing.T) {
	doc := testDocument(t)
	src := &scriptedSource{docs: []*Document{doc}, errs: []error{nil, errors.New("bucket unavailable")}}
	store := NewStore()
	r := NewRefresher(src, store)

	require.NoError(t, r.Refresh(context.Background()))
	err := r.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scripted")

	got, ok := store.Document()
	require.True(t, ok)
	assert.Same(t, doc, got)

	at, lastErr := r.Status()
	assert.False(t, at.IsZero())
	assert.EqualError(t, lastErr, "bucket unavailable")
}

func TestRunReloadsOnInterval(t *testing.T) {
	src := &scriptedSource{docs: []*Document{testDocument(t)}}
	store := NewStore()
	stop := runRefresher(t, NewRefresher(src, store, WithInterval(5*time.Millisecond)))
	defer stop()

	require.Eventually(t, func() bool { return src.Calls() >= 3 }, 2*time.Second, 5*time.Millisecond)
	_, ok := store.Loaded()
	assert.True(t, ok)
}

func TestRunReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "horoscopes.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonDoc), 0o644))

	store := NewStore()
	r := NewRefresher(FileSource{Path: path}, store, WithWatch(path), WithDebounce(10*time.Millisecond))
	stop := runRefresher(t, r)
	defer stop()

	require.Eventually(t, func() bool {
		text, err := store.Text(astro.Aries, Daily, General)
		return err == nil && text == "Dan za akciju."
	}, 2*time.Second, 10*time.Millisecond)

	updated := `{"horoscopes": [{"id": "aries", "daily": {"text": "Novi dan."}}]}`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		text, err := store.Text(astro.Aries, Daily, General)
		return err == nil && text == "Novi dan."
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunIgnoresOtherFilesAndBadWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "horoscopes.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonDoc), 0o644))

	store := NewStore()
	stop := runRefresher(t, NewRefresher(FileSource{Path: path}, store, WithWatch(path), WithDebounce(10*time.Millisecond)))
	defer stop()

	require.Eventually(t, func() bool {
		_, ok := store.Loaded()
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	time.Sleep(100 * time.Millisecond)

	text, err := store.Text(astro.Aries, Daily, General)
	require.NoError(t, err)
	assert.Equal(t, "Dan za akciju.", text)
}

func TestRunStartsWithoutContent(t *testing.T) {
	store := NewStore()
	stop := runRefresher(t, NewRefresher(FileSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}, store))
	time.Sleep(20 * time.Millisecond)
	stop()

	_, ok := store.Loaded()
	assert.False(t, ok)
}
