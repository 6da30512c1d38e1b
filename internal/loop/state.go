// Package loop runs the simulation: a logic loop that feeds fixed ticks
// into the snake, and a render loop that presents snapshots of it at its
// own pace. The two loops share only the body (which guards itself), the
// clock and an atomic state flag.
package loop

import (
	"time"

	"github.com/vovakirdan/greedysnake/internal/core"
)

// State is the lifecycle of a Loop.
//
//	NotStarted -> Running <-> Paused -> Finished
type State int32

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateFinished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Command is what the input side hands the logic loop once per iteration.
type Command struct {
	// Heading is the requested direction, nil when unchanged.
	Heading *core.Point
	// Paused is true while the player holds the game paused.
	Paused bool
}

// Input delivers commands to the logic loop. Poll must not block.
type Input interface {
	Poll() Command
}

// Frame is one render-ready view of the snake.
type Frame struct {
	Seq     uint64        // Presentation counter, starting at 1
	Points  []core.Point  // Head first; owned by the receiver
	Heading core.Point    // Heading at the time of the snapshot
	Elapsed time.Duration // Session time since the clock was initialized
}

// Renderer presents frames. It must not retain a lock of ours and may
// keep the Points slice. An error stops the loop.
type Renderer interface {
	Present(f Frame) error
}

// Body is the part of the snake the loop drives.
type Body interface {
	SetHeading(dir core.Point) bool
	Walk(tick time.Duration)
	// View returns a copy of the points and the heading they were
	// walked with, read together.
	View() ([]core.Point, core.Point)
}

// Observer receives loop activity counts, e.g. for metrics.
type Observer interface {
	ObserveWalks(n int)
	ObserveDiscarded(n int)
	ObserveFrame()
}

type nopObserver struct{}

func (nopObserver) ObserveWalks(int)     {}
func (nopObserver) ObserveDiscarded(int) {}
func (nopObserver) ObserveFrame()        {}

// Stats summarizes what a loop has done so far.
type Stats struct {
	Walks          uint64 // Fixed updates applied to the body
	DiscardedTicks uint64 // Fixed updates dropped while paused
	Frames         uint64 // Frames presented
}
