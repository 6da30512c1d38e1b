// Package core provides fundamental types and utilities for the snake simulation.
// It has no terminal dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import (
	"math"
	"strings"

	"github.com/joonazan/vec2"
)

// Point is a 2D floating-point coordinate. It doubles as a direction vector.
type Point = vec2.Vector

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Zero is the zero vector, used as "no heading".
var Zero = Point{}

// IsZero reports whether v is the zero vector.
func IsZero(v Point) bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether both coordinates are finite numbers.
func IsFinite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Add returns a + b.
func Add(a, b Point) Point {
	return a.Plus(b)
}

// Scale multiplies v by k.
func Scale(v Point, k float64) Point {
	return v.Times(k)
}

// Normalize returns v scaled to unit length.
// The zero vector has no direction and is returned unchanged.
func Normalize(v Point) Point {
	if IsZero(v) {
		return Zero
	}
	return v.Normalized()
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return b.Minus(a).Length()
}

// MoveToward returns from moved dist units along the segment toward to.
// If the points coincide, from is returned.
func MoveToward(from, to Point, dist float64) Point {
	dir := Normalize(to.Minus(from))
	return Add(from, Scale(dir, dist))
}

// PathLength returns the sum of the lengths of consecutive links.
func PathLength(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// Opposite reports whether a and b sum to the zero vector.
func Opposite(a, b Point) bool {
	return IsZero(Add(a, b))
}

// Direction names one of the eight compass headings, in screen
// coordinates (Y grows downward).
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
	DirUpLeft
	DirUpRight
	DirDownLeft
	DirDownRight
)

var directionNames = map[Direction]string{
	DirNone:      "none",
	DirUp:        "up",
	DirDown:      "down",
	DirLeft:      "left",
	DirRight:     "right",
	DirUpLeft:    "up-left",
	DirUpRight:   "up-right",
	DirDownLeft:  "down-left",
	DirDownRight: "down-right",
}

// String returns the lowercase name used in configuration files.
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "unknown"
}

// Vector returns the unit vector for the direction. DirNone yields Zero.
func (d Direction) Vector() Point {
	const diag = math.Sqrt2 / 2
	switch d {
	case DirUp:
		return Pt(0, -1)
	case DirDown:
		return Pt(0, 1)
	case DirLeft:
		return Pt(-1, 0)
	case DirRight:
		return Pt(1, 0)
	case DirUpLeft:
		return Pt(-diag, -diag)
	case DirUpRight:
		return Pt(diag, -diag)
	case DirDownLeft:
		return Pt(-diag, diag)
	case DirDownRight:
		return Pt(diag, diag)
	default:
		return Zero
	}
}

// ParseDirection converts a configuration name into a Direction.
// Matching is case-insensitive and accepts "_" in place of "-".
func ParseDirection(name string) (Direction, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if name == "" {
		return DirNone, true
	}
	for d, n := range directionNames {
		if n == name {
			return d, true
		}
	}
	return DirNone, false
}

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
