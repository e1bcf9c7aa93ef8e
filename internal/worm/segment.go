package worm

import (
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/pool"
)

// noSegment terminates a segment chain.
const noSegment = -1

// Segment is one pooled body unit of a worm. Segments form a singly linked
// chain from head to tail through segment pool IDs.
type Segment struct {
	pool.Object

	Position  core.Vec2 // interpolated world position, follows Target
	Target    core.Vec2 // world position of the cell the segment occupies
	Direction core.Vec2 // last step taken, zero for a fresh tail

	next int
}

func newSegment() *Segment {
	return &Segment{next: noSegment}
}

// Next returns the ID of the following segment, or -1 at the tail.
func (s *Segment) Next() int {
	return s.next
}

// Disable resets the segment to baseline and returns it to the pool.
func (s *Segment) Disable() {
	s.Position = core.Zero
	s.Target = core.Zero
	s.Direction = core.Zero
	s.next = noSegment
	s.Release()
}
