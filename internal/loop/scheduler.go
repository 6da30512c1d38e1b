package loop

import (
	"fmt"
	"time"
)

// Scheduler converts variable wall-clock deltas into a whole number of
// fixed logic updates. Leftover time is carried to the next poll, so the
// distance simulated per update is the same however often it is polled.
//
// A Scheduler is owned by a single goroutine (the logic loop).
type Scheduler struct {
	tick        time.Duration
	accumulated time.Duration
}

// NewScheduler creates a scheduler emitting updates of the given fixed size.
func NewScheduler(tick time.Duration) (*Scheduler, error) {
	if tick <= 0 {
		return nil, fmt.Errorf("loop: tick duration must be positive, got %v", tick)
	}
	return &Scheduler{tick: tick}, nil
}

// Advance adds elapsed time to the accumulator and drains whole ticks.
// It returns the number of fixed updates now due. Negative deltas are
// treated as zero.
func (s *Scheduler) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		s.accumulated += elapsed
	}

	n := 0
	for s.accumulated >= s.tick {
		s.accumulated -= s.tick
		n++
	}
	return n
}

// Tick returns the fixed update size.
func (s *Scheduler) Tick() time.Duration {
	return s.tick
}

// Pending returns the carried-over time not yet converted into an update.
func (s *Scheduler) Pending() time.Duration {
	return s.accumulated
}

// UntilNext returns how long until the next update is due.
func (s *Scheduler) UntilNext() time.Duration {
	return s.tick - s.accumulated
}

// Reset drops any accumulated time.
func (s *Scheduler) Reset() {
	s.accumulated = 0
}
