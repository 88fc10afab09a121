// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// Category identifies a class of characters that can feed the drill.
type Category int

const (
	Lowercase Category = iota
	Uppercase
	Digits
	Punctuation
)

// AllCategories lists every category in pool order.
var AllCategories = []Category{Lowercase, Uppercase, Digits, Punctuation}

// String returns the category name used in config files and charset file names.
func (c Category) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Digits:
		return "digits"
	case Punctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Categories holds the enabled flag for each character category.
type Categories struct {
	Lowercase   bool
	Uppercase   bool
	Digits      bool
	Punctuation bool
}

// Enabled reports whether the given category is switched on.
func (c Categories) Enabled(cat Category) bool {
	switch cat {
	case Lowercase:
		return c.Lowercase
	case Uppercase:
		return c.Uppercase
	case Digits:
		return c.Digits
	case Punctuation:
		return c.Punctuation
	default:
		return false
	}
}

// Any reports whether at least one category is enabled.
func (c Categories) Any() bool {
	return c.Lowercase || c.Uppercase || c.Digits || c.Punctuation
}

// String joins the enabled category names with commas.
func (c Categories) String() string {
	names := make([]string, 0, len(AllCategories))
	for _, cat := range AllCategories {
		if c.Enabled(cat) {
			names = append(names, cat.String())
		}
	}
	return strings.Join(names, ",")
}

// Settings defines a drill session. It does not change while a session runs.
type Settings struct {
	DurationSec   int
	HistoryLength int
	FutureLength  int
	Categories    Categories
	TenFingerHint bool
	// Hardcore additionally ends the session on the first mistake.
	Hardcore bool
}

// Duration returns the session time limit.
func (s Settings) Duration() time.Duration {
	return time.Duration(s.DurationSec) * time.Second
}

// SessionResult captures a finished drill session.
type SessionResult struct {
	StartedAt     time.Time
	EndedAt       time.Time
	DurationSec   int
	HistoryLength int
	FutureLength  int
	Categories    string
	TenFingerHint bool
	Hardcore      bool
	Reason        string
	Score         int
}

// ScoresFilter defines filters for score listings.
type ScoresFilter struct {
	DurationSec int
	Since       *time.Time
	Last        int
}

// ScoreRecord is a stored session score.
type ScoreRecord struct {
	SessionID   int64
	EndedAt     time.Time
	DurationSec int
	Categories  string
	Reason      string
	Score       int
}
