package core

import (
	"sync"
	"time"
)

// TimeSource provides the current wall-clock time.
// Tests inject a fake source to control elapsed time deterministically.
type TimeSource interface {
	Now() time.Time
}

// SystemTime uses time.Now, which carries a monotonic reading.
type SystemTime struct{}

// Now returns the current time.
func (SystemTime) Now() time.Time { return time.Now() }

// Clock measures elapsed wall time between polls.
// It is safe for concurrent use: the logic loop ticks it while other
// goroutines may read the running total.
type Clock struct {
	mu    sync.Mutex
	src   TimeSource
	last  time.Time
	total time.Duration
}

// NewClock creates a clock backed by src and initializes it.
// A nil source falls back to SystemTime.
func NewClock(src TimeSource) *Clock {
	if src == nil {
		src = SystemTime{}
	}
	c := &Clock{src: src}
	c.Init()
	return c
}

// Init resets the reference timestamp to now and the running total to zero.
func (c *Clock) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = c.src.Now()
	c.total = 0
}

// Tick returns the time elapsed since the previous Tick (or Init) and
// moves the reference timestamp forward. A clock regression reports zero.
func (c *Clock) Tick() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.src.Now()
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	c.total += elapsed
	return elapsed
}

// TotalElapsed returns the cumulative elapsed time since Init.
func (c *Clock) TotalElapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
