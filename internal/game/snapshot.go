package game

import "time"

// Snapshot is a read-only projection of a Session.
type Snapshot struct {
	Target    rune
	History   []Slot // oldest first
	Future    []rune // soonest first
	Score     int
	Elapsed   time.Duration
	Remaining time.Duration
	Limit     time.Duration
	State     State
	Reason    Reason

	// Configured window sizes. Buffers never shrink below one slot, so a
	// configured zero renders nothing.
	HistoryLength int
	FutureLength  int
	TenFingerHint bool
}

// VisibleHistory returns the newest HistoryLength slots, oldest first.
func (s Snapshot) VisibleHistory() []Slot {
	n := min(s.HistoryLength, len(s.History))
	return s.History[len(s.History)-n:]
}

// VisibleFuture returns the first FutureLength queued characters.
func (s Snapshot) VisibleFuture() []rune {
	n := min(s.FutureLength, len(s.Future))
	return s.Future[:n]
}

// LastTyped returns the newest history slot, which is kept even when the
// visible history is empty.
func (s Snapshot) LastTyped() (Slot, bool) {
	if len(s.History) == 0 {
		return Slot{}, false
	}
	last := s.History[len(s.History)-1]
	if last.Char == blank && !last.Correct {
		return Slot{}, false
	}
	return last, true
}

// Finished reports whether the session has ended.
func (s Snapshot) Finished() bool {
	return s.State == StateFinished
}
