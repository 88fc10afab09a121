package model

import (
	"errors"
	"fmt"
)

const (
	DefaultDurationSec   = 30
	DefaultHistoryLength = 3
	DefaultFutureLength  = 3
)

// DefaultCategories is the category set used when nothing usable is enabled.
var DefaultCategories = Categories{Lowercase: true}

// DefaultSettings returns the settings used when no config is available.
func DefaultSettings() Settings {
	return Settings{
		DurationSec:   DefaultDurationSec,
		HistoryLength: DefaultHistoryLength,
		FutureLength:  DefaultFutureLength,
		Categories:    DefaultCategories,
	}
}

// Validate reports every out-of-range field. Large values are accepted.
func (s Settings) Validate() error {
	var errs []error
	if s.DurationSec <= 0 {
		errs = append(errs, fmt.Errorf("duration must be > 0, got %d", s.DurationSec))
	}
	if s.HistoryLength < 0 {
		errs = append(errs, fmt.Errorf("history length must be >= 0, got %d", s.HistoryLength))
	}
	if s.FutureLength < 0 {
		errs = append(errs, fmt.Errorf("future length must be >= 0, got %d", s.FutureLength))
	}
	if !s.Categories.Any() {
		errs = append(errs, errors.New("at least one character category must be enabled"))
	}
	return errors.Join(errs...)
}

// Sanitize replaces each invalid field with its default and keeps the rest.
func (s Settings) Sanitize() Settings {
	if s.DurationSec <= 0 {
		s.DurationSec = DefaultDurationSec
	}
	if s.HistoryLength < 0 {
		s.HistoryLength = DefaultHistoryLength
	}
	if s.FutureLength < 0 {
		s.FutureLength = DefaultFutureLength
	}
	if !s.Categories.Any() {
		s.Categories = DefaultCategories
	}
	return s
}
