// Package game implements the drill session state machine.
package game

import (
	"time"

	"github.com/verte-zerg/keydrill/internal/clock"
	"github.com/verte-zerg/keydrill/internal/model"
)

// State is the session lifecycle state.
type State int

const (
	StateActive State = iota
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Reason records why a session finished.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonTimeUp
	ReasonMistake
)

// String returns the reason name stored with session results.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonTimeUp:
		return "time"
	case ReasonMistake:
		return "mistake"
	default:
		return "unknown"
	}
}

// blank fills history slots that have not been typed yet.
const blank = ' '

// Slot is one typed character and whether it matched the target at the time.
type Slot struct {
	Char    rune
	Correct bool
}

// Sampler yields characters for the target and future queue.
type Sampler interface {
	Sample() rune
}

// Session owns the target, the rolling history and future buffers and the
// score. It is not safe for concurrent use; the control loop owns it.
type Session struct {
	settings model.Settings
	pool     Sampler
	clock    clock.Clock

	target  rune
	history []Slot
	future  []rune
	score   int
	elapsed time.Duration
	state   State
	reason  Reason
}

// New creates an active session started at now.
func New(settings model.Settings, pool Sampler, now time.Time) *Session {
	s := &Session{settings: settings, pool: pool}
	s.Reset(now)
	return s
}

// Reset restarts the session from any state, keeping settings and pool.
func (s *Session) Reset(now time.Time) {
	s.clock = clock.Start(now)
	s.elapsed = 0
	s.score = 0
	s.state = StateActive
	s.reason = ReasonNone

	s.history = make([]Slot, workingSize(s.settings.HistoryLength))
	for i := range s.history {
		s.history[i] = Slot{Char: blank}
	}
	s.target = s.pool.Sample()
	s.future = make([]rune, workingSize(s.settings.FutureLength))
	for i := range s.future {
		s.future[i] = s.pool.Sample()
	}
}

// Tick updates elapsed time and finishes the session once the limit is hit.
func (s *Session) Tick(now time.Time) {
	if s.state == StateFinished {
		return
	}
	s.elapsed = s.clock.Elapsed(now)
	if clock.Expired(s.elapsed, s.settings.Duration()) {
		s.finish(ReasonTimeUp)
	}
}

// OnKey records a key press. Finished sessions ignore input. Expiry is only
// observed by Tick, so a press before the next tick still counts.
func (s *Session) OnKey(r rune) {
	if s.state == StateFinished {
		return
	}
	correct := r == s.target
	copy(s.history, s.history[1:])
	s.history[len(s.history)-1] = Slot{Char: r, Correct: correct}

	if !correct {
		if s.settings.Hardcore {
			s.finish(ReasonMistake)
		}
		return
	}
	s.target = s.future[0]
	copy(s.future, s.future[1:])
	s.future[len(s.future)-1] = s.pool.Sample()
	s.score++
}

func (s *Session) finish(reason Reason) {
	s.state = StateFinished
	s.reason = reason
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Score returns the number of correct presses since the last reset.
func (s *Session) Score() int {
	return s.score
}

// Settings returns the session settings.
func (s *Session) Settings() model.Settings {
	return s.settings
}

// StartedAt returns the instant of the last reset.
func (s *Session) StartedAt() time.Time {
	return s.clock.StartedAt()
}

// Snapshot returns a read-only copy of the session for rendering.
func (s *Session) Snapshot() Snapshot {
	history := make([]Slot, len(s.history))
	copy(history, s.history)
	future := make([]rune, len(s.future))
	copy(future, s.future)
	limit := s.settings.Duration()
	return Snapshot{
		Target:        s.target,
		History:       history,
		Future:        future,
		Score:         s.score,
		Elapsed:       s.elapsed,
		Remaining:     clock.Remaining(s.elapsed, limit),
		Limit:         limit,
		State:         s.state,
		Reason:        s.reason,
		HistoryLength: max(s.settings.HistoryLength, 0),
		FutureLength:  max(s.settings.FutureLength, 0),
		TenFingerHint: s.settings.TenFingerHint,
	}
}

func workingSize(configured int) int {
	if configured < 1 {
		return 1
	}
	return configured
}
