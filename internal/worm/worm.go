package worm

import (
	"math"

	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/grid"
	"github.com/vovakirdan/tui-worms/internal/pool"
)

// State is the locomotion state reported by Move.
type State int

const (
	StateMoving State = iota
	StateBlocked
	StateFrozen
)

func (s State) String() string {
	switch s {
	case StateMoving:
		return "moving"
	case StateBlocked:
		return "blocked"
	case StateFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Controller steers a possessed worm. A worm without one is autonomous.
type Controller interface {
	Name() string
}

// Worm is a chain of segments with a shared direction.
//
// The chain always holds lengthCap segments. The first length of them are
// visible and each holds exactly one Worm cell; the rest share the last
// visible target until the worm moves far enough to unfold them.
type Worm struct {
	pool.Object

	m *Manager

	head        int
	tail        int
	length      int
	lengthCap   int
	direction   core.Vec2
	controller  Controller
	color       core.Color
	growPending bool
	state       State
}

// Length returns the number of visible segments.
func (w *Worm) Length() int {
	return w.length
}

// LengthCap returns the number of segments in the chain.
func (w *Worm) LengthCap() int {
	return w.lengthCap
}

// Direction returns the heading.
func (w *Worm) Direction() core.Vec2 {
	return w.direction
}

// Color returns the worm color.
func (w *Worm) Color() core.Color {
	return w.color
}

// State returns the result of the last Move.
func (w *Worm) State() State {
	return w.state
}

// GrowPending reports whether a segment will be added on the next Move.
func (w *Worm) GrowPending() bool {
	return w.growPending
}

// Controller returns the possessing controller, or nil.
func (w *Worm) Controller() Controller {
	return w.controller
}

// Possess hands the worm to a controller. Possessed worms never pick a new
// direction on their own.
func (w *Worm) Possess(c Controller) {
	w.controller = c
}

// Unpossess returns the worm to autonomous movement.
func (w *Worm) Unpossess() {
	w.controller = nil
}

// Head returns the first segment.
func (w *Worm) Head() *Segment {
	return w.m.segment(w.head)
}

// Tail returns the last segment.
func (w *Worm) Tail() *Segment {
	return w.m.segment(w.tail)
}

// Segments yields the chain from head to tail.
func (w *Worm) Segments(yield func(*Segment) bool) {
	for id := w.head; id != noSegment; {
		s := w.m.segment(id)
		if !yield(s) {
			return
		}
		id = s.next
	}
}

// VisibleTargets appends the targets of the visible segments to dst,
// head first.
func (w *Worm) VisibleTargets(dst []core.Vec2) []core.Vec2 {
	i := 0
	for s := range w.Segments {
		if i == w.length {
			break
		}
		dst = append(dst, s.Target)
		i++
	}
	return dst
}

// SetDirection steers the worm. The request is accepted only if the cell in
// that direction is passable right now; otherwise the heading is kept.
func (w *Worm) SetDirection(d core.Vec2) bool {
	valid := false
	for _, dir := range core.Directions {
		if d == dir {
			valid = true
			break
		}
	}
	if !valid || !w.m.passable(w.Head().Target, d) {
		return false
	}
	w.direction = d
	return true
}

// Move advances the worm by one cell. A pending growth is attempted first.
// If the next cell is blocked an autonomous worm picks a new passable
// direction and tries once more; failing that it freezes. A possessed worm
// just stays in place.
func (w *Worm) Move() State {
	if w.growPending {
		w.Grow()
	}

	g := w.m.grid
	cell := float64(g.CellSize())

	for retry := false; ; retry = true {
		head := w.Head()
		candidate := head.Target.Add(w.direction.Scale(cell))
		kind := g.CheckAt(candidate, true)

		if kind.Passable() {
			if kind == grid.KindFruit {
				w.growPending = true
			}
			if w.length < w.lengthCap {
				w.length++
			} else {
				g.SetAt(grid.Empty, w.Tail().Target)
			}
			w.follow(candidate)
			g.SetAt(grid.Worm(w.ID()), candidate)
			w.state = StateMoving
			return w.state
		}

		if retry {
			return w.Freeze()
		}
		if w.controller != nil {
			w.state = StateBlocked
			return w.state
		}
		w.direction = w.m.RandomDirection(head.Target)
	}
}

// Freeze hands the worm to the freezer and disables it. When the freezer
// has no room the worm stays in place and reports StateBlocked.
// Possessed worms never freeze on their own; their controller calls Freeze.
func (w *Worm) Freeze() State {
	if w.m.freezer != nil && !w.m.freezer.Freeze(w) {
		w.m.logger.Warn("freeze deferred, no cluster available", "worm", w.ID())
		w.state = StateBlocked
		return w.state
	}
	w.m.logger.Debug("worm froze", "worm", w.ID(), "length", w.length)
	w.Disable()
	w.state = StateFrozen
	return w.state
}

// follow shifts direction and target down the chain: the head takes the new
// values and every other segment takes its predecessor's previous ones.
func (w *Worm) follow(target core.Vec2) {
	dir := w.direction
	for s := range w.Segments {
		s.Direction, dir = dir, s.Direction
		s.Target, target = target, s.Target
	}
}

// Grow appends one hidden segment at the tail. It is skipped at the length
// limit. When the segment pool is exhausted the growth stays pending and is
// retried on the next Move.
func (w *Worm) Grow() bool {
	if w.lengthCap >= w.m.maxLength {
		w.growPending = false
		return false
	}
	if !w.link() {
		w.growPending = true
		return false
	}
	w.growPending = false
	return true
}

// link enables a segment and attaches it behind the tail.
func (w *Worm) link() bool {
	s, ok := w.m.segments.Enable()
	if !ok {
		return false
	}
	tail := w.Tail()
	s.Position = tail.Position
	s.Target = tail.Target
	s.Direction = core.Zero

	tail.Direction = core.Zero
	tail.next = s.ID()
	w.tail = s.ID()
	w.lengthCap++
	return true
}

// Interpolate moves every segment's rendered position up to step world
// units toward its target.
func (w *Worm) Interpolate(step float64) {
	for s := range w.Segments {
		d := s.Target.Sub(s.Position)
		dist := math.Hypot(d.X, d.Y)
		if dist <= step {
			s.Position = s.Target
			continue
		}
		s.Position = s.Position.Add(d.Scale(step / dist))
	}
}

// Disable releases every segment, clears the cells still tagged with this
// worm and returns the worm to its pool.
func (w *Worm) Disable() {
	g := w.m.grid
	self := grid.Worm(w.ID())
	for id := w.head; id != noSegment; {
		s := w.m.segment(id)
		next := s.next
		if g.GetAt(s.Target) == self {
			g.SetAt(grid.Empty, s.Target)
		}
		s.Disable()
		id = next
	}
	w.head = noSegment
	w.tail = noSegment
	w.length = 0
	w.lengthCap = 0
	w.direction = core.Zero
	w.controller = nil
	w.growPending = false
	w.Release()
}
