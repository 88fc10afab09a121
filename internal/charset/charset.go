// Package charset provides the characters available to each drill category.
package charset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/keydrill/internal/model"
)

const (
	lowercaseSet   = "abcdefghijklmnopqrstuvwxyz"
	uppercaseSet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitsSet      = "0123456789"
	punctuationSet = ".,!?;:\"'{}()[]-=/<>`"
)

// Builtin returns the built-in characters for a category.
func Builtin(cat model.Category) []rune {
	switch cat {
	case model.Lowercase:
		return []rune(lowercaseSet)
	case model.Uppercase:
		return []rune(uppercaseSet)
	case model.Digits:
		return []rune(digitsSet)
	case model.Punctuation:
		return []rune(punctuationSet)
	default:
		return nil
	}
}

// Source resolves category characters, preferring files in Dir over the
// built-in sets. A zero Source uses only built-in sets.
type Source struct {
	Dir string
}

// NewSource returns a Source reading overrides from dir.
func NewSource(dir string) Source {
	return Source{Dir: dir}
}

// Path returns the override file path for a category.
func (s Source) Path(cat model.Category) string {
	if s.Dir == "" {
		return ""
	}
	return filepath.Join(s.Dir, cat.String()+".txt")
}

// Runes returns the characters for a category. A missing override file is not
// an error. On a read failure the built-in set is returned with the error.
func (s Source) Runes(cat model.Category) ([]rune, error) {
	path := s.Path(cat)
	if path == "" {
		return Builtin(cat), nil
	}
	runes, err := LoadRunes(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Builtin(cat), nil
		}
		return Builtin(cat), fmt.Errorf("failed to load %s charset: %w", cat, err)
	}
	return runes, nil
}
