package horoscope

import (
	"errors"
	"sync"
	"time"

	"github.com/zvezde365/zvezde-api/internal/astro"
)

var (
	// ErrNotLoaded means no document has been loaded yet.
	ErrNotLoaded = errors.New("horoscopes not loaded")
	// ErrNoEntry means the loaded document has no entry for the sign.
	ErrNoEntry = errors.New("no horoscope for sign")
)

// Lookup is the answer for one sign, period and category.
type Lookup struct {
	Sign        astro.SignID `json:"sign"`
	Period      Period       `json:"period"`
	Category    Category     `json:"category"`
	Text        string       `json:"text"`
	LastUpdated time.Time    `json:"lastUpdated"`
	Freshness   Freshness    `json:"freshness"`
}

// Store holds the current document. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	doc      *Document
	bySign   map[astro.SignID]int
	loadedAt time.Time
	now      func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Replace swaps in doc. A nil doc is ignored.
func (s *Store) Replace(doc *Document) {
	if doc == nil {
		return
	}
	idx := make(map[astro.SignID]int, len(doc.Horoscopes))
	for i, e := range doc.Horoscopes {
		idx[e.Sign] = i
	}

	s.mu.Lock()
	s.doc = doc
	s.bySign = idx
	s.loadedAt = s.now()
	s.mu.Unlock()
}

// Loaded reports whether a document is present and when it was swapped in.
func (s *Store) Loaded() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt, s.doc != nil
}

// Document returns the current document.
func (s *Store) Document() (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc, s.doc != nil
}

// Get returns the entry for sign.
func (s *Store) Get(sign astro.SignID) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return Entry{}, ErrNotLoaded
	}
	i, ok := s.bySign[sign]
	if !ok {
		return Entry{}, ErrNoEntry
	}
	return s.doc.Horoscopes[i], nil
}

// Text returns the text for sign, period and category, with Unavailable
// substituted for empty texts.
func (s *Store) Text(sign astro.SignID, p Period, c Category) (string, error) {
	e, err := s.Get(sign)
	if err != nil {
		return "", err
	}
	return e.Reading(p).Category(c), nil
}

// Freshness grades the sign's reading for p against now.
func (s *Store) Freshness(sign astro.SignID, p Period, now time.Time) (Freshness, error) {
	e, err := s.Get(sign)
	if err != nil {
		return "", err
	}
	return FreshnessOf(p, e.Reading(p).LastUpdated, now), nil
}

// Lookup combines Text and Freshness.
func (s *Store) Lookup(sign astro.SignID, p Period, c Category, now time.Time) (Lookup, error) {
	e, err := s.Get(sign)
	if err != nil {
		return Lookup{}, err
	}
	r := e.Reading(p)
	return Lookup{
		Sign:        sign,
		Period:      p,
		Category:    c,
		Text:        r.Category(c),
		LastUpdated: r.LastUpdated,
		Freshness:   FreshnessOf(p, r.LastUpdated, now),
	}, nil
}
