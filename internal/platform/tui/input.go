package tui

import (
	"sync"

	"github.com/vovakirdan/greedysnake/internal/core"
	"github.com/vovakirdan/greedysnake/internal/loop"
)

// InputQueue collects key presses from the Bubble Tea goroutine and hands
// them to the logic loop. Only the latest heading between two polls is
// kept. Terminals report presses, not held keys, so pause is a toggle.
type InputQueue struct {
	mu      sync.Mutex
	heading *core.Point
	paused  bool
}

// NewInputQueue creates an empty, unpaused queue.
func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

// Turn queues a heading change. It is dropped while paused.
func (q *InputQueue) Turn(dir core.Direction) {
	if dir == core.DirNone {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.paused {
		return
	}
	v := dir.Vector()
	q.heading = &v
}

// TogglePause flips the pause flag and returns the new value.
// Pausing discards a heading queued before the press.
func (q *InputQueue) TogglePause() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.paused = !q.paused
	if q.paused {
		q.heading = nil
	}
	return q.paused
}

// Paused reports whether the player has paused the game.
func (q *InputQueue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// Poll implements loop.Input. The queued heading is consumed.
func (q *InputQueue) Poll() loop.Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	cmd := loop.Command{Heading: q.heading, Paused: q.paused}
	q.heading = nil
	return cmd
}
