// Package snake implements the locomotion model: a snake is an ordered
// chain of points connected by straight links, head first. Walking extends
// the head along the heading and contracts the tail by the same arc length,
// so the total path length is conserved. Turning leaves a corner behind that
// the tail eventually consumes.
//
// Growth (eating) is not modelled. A future Grow would skip part of the tail
// contraction for the frame in which food is consumed.
package snake

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/vovakirdan/greedysnake/internal/core"
)

// MinPoints is the structural minimum of a body: a head and a tail.
const MinPoints = 2

// ErrInvalidBody is returned when a body is built from unusable parameters.
var ErrInvalidBody = errors.New("snake: invalid body")

// Body is the snake's point chain. The sequence is owned by the Body and
// guarded by its lock; readers receive copies via Snapshot.
type Body struct {
	mu      sync.RWMutex
	points  []core.Point // Head at index 0
	speed   float64      // Distance per second
	heading core.Point
}

// NewBody creates a two-point body. The heading may be the zero vector,
// meaning the snake stays put until it is given a direction.
func NewBody(head, tail core.Point, speed float64, heading core.Point) (*Body, error) {
	if !core.IsFinite(head) || !core.IsFinite(tail) {
		return nil, fmt.Errorf("%w: head %v and tail %v must be finite", ErrInvalidBody, head, tail)
	}
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < 0 {
		return nil, fmt.Errorf("%w: speed %v must be a non-negative number", ErrInvalidBody, speed)
	}
	if !core.IsFinite(heading) {
		return nil, fmt.Errorf("%w: heading %v must be finite", ErrInvalidBody, heading)
	}

	return &Body{
		points:  []core.Point{head, tail},
		speed:   speed,
		heading: heading,
	}, nil
}

// SetHeading turns the snake. Turning to the current heading, to the exact
// opposite (a snake cannot reverse in place) or to the zero vector is
// ignored. Otherwise the head is duplicated, leaving a corner at the spot
// where the turn happened.
// It reports whether the heading changed.
func (b *Body) SetHeading(dir core.Point) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if core.IsZero(dir) || !core.IsFinite(dir) {
		return false
	}
	if dir == b.heading || core.Opposite(b.heading, dir) {
		return false
	}

	b.heading = dir
	b.points = append(b.points, core.Point{})
	copy(b.points[1:], b.points[:len(b.points)-1])
	return true
}

// Walk advances the snake by one fixed tick: the head moves
// speed*tick along the heading and the tail contracts by the same
// distance. A zero heading means no movement this frame.
func (b *Body) Walk(tick time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	dir := core.Normalize(b.heading)
	if core.IsZero(dir) || tick <= 0 {
		return
	}
	distance := b.speed * tick.Seconds()
	if distance <= 0 {
		return
	}

	b.points[0] = core.Add(b.points[0], core.Scale(dir, distance))
	b.contractTail(distance)
}

// contractTail removes distance worth of path from the tail end.
// Each step either shortens the last link and stops, or consumes it
// entirely and moves on to the next one. The body never drops below
// MinPoints: once only the head link is left, a fully consumed tail
// collapses onto the head.
func (b *Body) contractTail(distance float64) {
	for distance > 0 {
		n := len(b.points)
		tail, prev := b.points[n-1], b.points[n-2]
		d := core.Distance(tail, prev)

		if d > distance {
			b.points[n-1] = core.MoveToward(tail, prev, distance)
			return
		}

		if n == MinPoints {
			b.points[n-1] = prev
			return
		}
		b.points = b.points[:n-1]
		distance -= d
	}
}

// Snapshot returns an independent copy of the points, head first.
// It never observes a partially applied Walk or SetHeading.
func (b *Body) Snapshot() []core.Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.Point, len(b.points))
	copy(out, b.points)
	return out
}

// View returns a Snapshot together with the heading, taken under one
// read lock so a frame never pairs a new heading with old points.
func (b *Body) View() ([]core.Point, core.Point) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.Point, len(b.points))
	copy(out, b.points)
	return out, b.heading
}

// Head returns the leading point.
func (b *Body) Head() core.Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.points[0]
}

// Heading returns the current heading vector.
func (b *Body) Heading() core.Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.heading
}

// Speed returns the distance covered per second.
func (b *Body) Speed() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.speed
}

// Len returns the number of points, corners included.
func (b *Body) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.points)
}

// PathLength returns the total length of all links.
func (b *Body) PathLength() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return core.PathLength(b.points)
}
