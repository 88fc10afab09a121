package game

import "time"

// Event is an input delivered to a session by the control loop.
type Event interface {
	event()
}

// KeyPress is a printable character typed by the player.
type KeyPress struct {
	Rune rune
}

// ResetRequested restarts the session at Now.
type ResetRequested struct {
	Now time.Time
}

// Tick re-evaluates the clock at Now.
type Tick struct {
	Now time.Time
}

// ExitRequested asks the control loop to leave the session.
type ExitRequested struct{}

func (KeyPress) event()       {}
func (ResetRequested) event() {}
func (Tick) event()           {}
func (ExitRequested) event()  {}

// Apply routes an event to the matching operation and reports whether the
// caller should stop driving the session.
func (s *Session) Apply(ev Event) bool {
	switch ev := ev.(type) {
	case KeyPress:
		s.OnKey(ev.Rune)
	case ResetRequested:
		s.Reset(ev.Now)
	case Tick:
		s.Tick(ev.Now)
	case ExitRequested:
		return true
	}
	return false
}
