// Package horoscope serves the per-sign daily, weekly and monthly horoscope
// texts. Content is published as a YAML or JSON document (file or S3) and
// kept in memory by a Store that a Refresher reloads in the background.
package horoscope

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zvezde365/zvezde-api/internal/astro"
)

// Unavailable is returned when a category has no text.
const Unavailable = "Horoskop za ovu kategoriju trenutno nije dostupan."

// Period selects which reading of a sign is used.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// ParsePeriod maps user input to a period. Anything unknown is daily.
func ParsePeriod(s string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Weekly, Monthly:
		return p
	default:
		return Daily
	}
}

// maxAge is how many whole days a reading stays "recent".
func (p Period) maxAge() int {
	switch p {
	case Weekly:
		return 7
	case Monthly:
		return 30
	default:
		return 1
	}
}

// Category selects a text within a reading.
type Category string

const (
	General Category = "general"
	Love    Category = "love"
	Health  Category = "health"
	Career  Category = "career"
)

// ParseCategory maps user input to a category. Anything unknown is general.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Love, Health, Career:
		return c
	default:
		return General
	}
}

// Freshness grades how current a reading is.
type Freshness string

const (
	Fresh  Freshness = "fresh"
	Recent Freshness = "recent"
	Stale  Freshness = "stale"
)

// FreshnessOf grades a reading updated at updated, as seen at now. Days are
// whole 24h spans truncated toward zero.
func FreshnessOf(p Period, updated, now time.Time) Freshness {
	days := int(now.Sub(updated).Hours() / 24)
	switch {
	case days == 0:
		return Fresh
	case days <= p.maxAge():
		return Recent
	default:
		return Stale
	}
}

// Reading is one period's horoscope for a sign.
type Reading struct {
	Text        string    `json:"text"`
	Love        string    `json:"love,omitempty"`
	Health      string    `json:"health,omitempty"`
	Career      string    `json:"career,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Category returns the text for c, or Unavailable when it is empty.
func (r Reading) Category(c Category) string {
	var text string
	switch c {
	case Love:
		text = r.Love
	case Health:
		text = r.Health
	case Career:
		text = r.Career
	default:
		text = r.Text
	}
	if strings.TrimSpace(text) == "" {
		return Unavailable
	}
	return text
}

// Entry holds all readings for one sign.
type Entry struct {
	Sign    astro.SignID `json:"id"`
	Daily   Reading      `json:"daily"`
	Weekly  Reading      `json:"weekly"`
	Monthly Reading      `json:"monthly"`
}

// Reading returns the reading for p.
func (e Entry) Reading(p Period) Reading {
	switch p {
	case Weekly:
		return e.Weekly
	case Monthly:
		return e.Monthly
	default:
		return e.Daily
	}
}

// Document is the published horoscope content.
type Document struct {
	LastUpdated time.Time `json:"lastUpdated"`
	Horoscopes  []Entry   `json:"horoscopes"`
}

// wire types keep timestamps as strings: JSON documents quote them, and
// yaml.v3 will not decode a quoted scalar into time.Time.
type rawReading struct {
	Text        string `yaml:"text"`
	Love        string `yaml:"love"`
	Health      string `yaml:"health"`
	Career      string `yaml:"career"`
	LastUpdated string `yaml:"lastUpdated"`
}

type rawEntry struct {
	ID      string     `yaml:"id"`
	Daily   rawReading `yaml:"daily"`
	Weekly  rawReading `yaml:"weekly"`
	Monthly rawReading `yaml:"monthly"`
}

type rawDocument struct {
	LastUpdated string     `yaml:"lastUpdated"`
	Horoscopes  []rawEntry `yaml:"horoscopes"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (r rawReading) reading() (Reading, error) {
	t, err := parseTime(r.LastUpdated)
	if err != nil {
		return Reading{}, err
	}
	return Reading{Text: r.Text, Love: r.Love, Health: r.Health, Career: r.Career, LastUpdated: t}, nil
}

// Decode parses a YAML or JSON horoscope document. Entries must name known
// signs and a sign may appear only once.
func Decode(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding horoscope document: %w", err)
	}
	if len(raw.Horoscopes) == 0 {
		return nil, errors.New("horoscope document has no entries")
	}

	updated, err := parseTime(raw.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("document lastUpdated: %w", err)
	}
	doc := &Document{LastUpdated: updated, Horoscopes: make([]Entry, 0, len(raw.Horoscopes))}

	seen := make(map[astro.SignID]bool, len(raw.Horoscopes))
	for i, re := range raw.Horoscopes {
		id, ok := astro.ParseSignID(re.ID)
		if !ok {
			return nil, fmt.Errorf("entry %d: %w: %q", i, astro.ErrUnknownSign, re.ID)
		}
		if seen[id] {
			return nil, fmt.Errorf("entry %d: duplicate sign %q", i, id)
		}
		seen[id] = true

		entry := Entry{Sign: id}
		for _, part := range []struct {
			name string
			raw  rawReading
			dst  *Reading
		}{
			{"daily", re.Daily, &entry.Daily},
			{"weekly", re.Weekly, &entry.Weekly},
			{"monthly", re.Monthly, &entry.Monthly},
		} {
			r, err := part.raw.reading()
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", id, part.name, err)
			}
			*part.dst = r
		}
		doc.Horoscopes = append(doc.Horoscopes, entry)
	}
	return doc, nil
}
