// Package clock tracks elapsed time within a drill session.
package clock

import "time"

// Clock captures the instant a session started.
type Clock struct {
	start time.Time
}

// Start returns a Clock that began at now.
func Start(now time.Time) Clock {
	return Clock{start: now}
}

// StartedAt returns the start instant.
func (c Clock) StartedAt() time.Time {
	return c.start
}

// Elapsed returns the time since start. Instants before start count as zero.
func (c Clock) Elapsed(now time.Time) time.Duration {
	d := now.Sub(c.start)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether elapsed has reached limit.
func Expired(elapsed, limit time.Duration) bool {
	return elapsed >= limit
}

// Remaining returns the time left before limit, never negative.
func Remaining(elapsed, limit time.Duration) time.Duration {
	if elapsed >= limit {
		return 0
	}
	return limit - elapsed
}
