// Package pool builds the set of characters a drill samples from.
package pool

import (
	"errors"
	"math/rand"
	"slices"
	"time"

	"github.com/verte-zerg/keydrill/internal/charset"
	"github.com/verte-zerg/keydrill/internal/model"
)

// ErrEmptyPool is returned when the enabled categories yield no characters.
var ErrEmptyPool = errors.New("character pool is empty")

// RandomSource picks an index in [0, n).
type RandomSource interface {
	Intn(n int) int
}

// CharSource supplies the characters of a category.
type CharSource interface {
	Runes(cat model.Category) ([]rune, error)
}

// NewRandom returns a RandomSource seeded with seed, or with the current time
// when seed is 0.
func NewRandom(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Pool is an immutable set of characters with uniform sampling.
type Pool struct {
	runes []rune
	rnd   RandomSource
}

// Build unions the characters of every enabled category. Source errors are
// joined into the returned error alongside a usable pool; an empty union
// returns ErrEmptyPool and a nil pool.
func Build(src CharSource, cats model.Categories, rnd RandomSource) (*Pool, error) {
	set := map[rune]struct{}{}
	var errs []error
	for _, cat := range model.AllCategories {
		if !cats.Enabled(cat) {
			continue
		}
		runes, err := src.Runes(cat)
		if err != nil {
			errs = append(errs, err)
		}
		for _, r := range runes {
			set[r] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil, errors.Join(append(errs, ErrEmptyPool)...)
	}
	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return &Pool{runes: runes, rnd: rnd}, errors.Join(errs...)
}

// BuildOrDefault builds a pool and substitutes the built-in default categories
// when the result would be empty. The returned pool is never nil; the error
// reports what was substituted or skipped.
func BuildOrDefault(src CharSource, cats model.Categories, rnd RandomSource) (*Pool, error) {
	p, err := Build(src, cats, rnd)
	if p != nil {
		return p, err
	}
	fallback, _ := Build(builtinSource{}, model.DefaultCategories, rnd)
	return fallback, err
}

// Sample returns one character chosen uniformly at random.
func (p *Pool) Sample() rune {
	return p.runes[p.rnd.Intn(len(p.runes))]
}

// Runes returns a copy of the pool characters in sorted order.
func (p *Pool) Runes() []rune {
	return slices.Clone(p.runes)
}

// Len returns the number of distinct characters in the pool.
func (p *Pool) Len() int {
	return len(p.runes)
}

type builtinSource struct{}

func (builtinSource) Runes(cat model.Category) ([]rune, error) {
	return charset.Builtin(cat), nil
}
