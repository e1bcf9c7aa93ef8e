// Package core provides the value types shared by the simulation and the
// platform layer. It has no external dependencies so that simulation code
// stays pure and testable.
package core

import (
	"fmt"
	"math"
)

// Vec2 is a position or step in world space.
// World Y grows upwards; grid rows grow downwards (see grid.Grid).
type Vec2 struct {
	X, Y float64
}

// V is a convenience constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Unit step vectors in world space.
var (
	Zero  = Vec2{}
	Up    = Vec2{X: 0, Y: 1}
	Down  = Vec2{X: 0, Y: -1}
	Left  = Vec2{X: -1, Y: 0}
	Right = Vec2{X: 1, Y: 0}
)

// Directions lists the four unit directions in a fixed order.
// Random direction picks index into this array, so the order is part of
// deterministic replay.
var Directions = [4]Vec2{Up, Right, Down, Left}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// RotateCW rotates v by 90 degrees clockwise (Y up).
func (v Vec2) RotateCW() Vec2 {
	return Vec2{X: v.Y, Y: -v.X}
}

// RotateCCW rotates v by 90 degrees counter-clockwise (Y up).
func (v Vec2) RotateCCW() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Distance returns the euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// String returns a compact representation, e.g. "(10,-20)".
func (v Vec2) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

// DirectionName returns a human-readable name for a unit direction.
func DirectionName(d Vec2) string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Zero:
		return "none"
	default:
		return d.String()
	}
}

// Rect represents an axis-aligned rectangle in screen cells.
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

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
