package block

import (
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/grid"
	"github.com/vovakirdan/tui-worms/internal/pool"
	"github.com/vovakirdan/tui-worms/internal/worm"
)

// Cluster is the static remains of a frozen worm: an anchor at the worm's
// head and one offset per visible segment, all in world units.
type Cluster struct {
	pool.Object

	m *Manager

	anchor     core.Vec2
	offsets    []core.Vec2
	next       []core.Vec2
	color      core.Color
	controller worm.Controller
}

// Anchor returns the world position the offsets are relative to.
func (c *Cluster) Anchor() core.Vec2 {
	return c.anchor
}

// Count returns the number of cells the cluster holds.
func (c *Cluster) Count() int {
	return len(c.offsets)
}

// Color returns the color inherited from the worm.
func (c *Cluster) Color() core.Color {
	return c.color
}

// Controller returns the controller inherited from the worm, or nil.
func (c *Cluster) Controller() worm.Controller {
	return c.controller
}

// Possess hands the cluster to a controller.
func (c *Cluster) Possess(ctrl worm.Controller) {
	c.controller = ctrl
}

// Unpossess detaches the controller.
func (c *Cluster) Unpossess() {
	c.controller = nil
}

// Offsets returns the cell offsets relative to the anchor. The slice is
// owned by the cluster.
func (c *Cluster) Offsets() []core.Vec2 {
	return c.offsets
}

// Cells appends the world position of every cell to dst.
func (c *Cluster) Cells(dst []core.Vec2) []core.Vec2 {
	for _, off := range c.offsets {
		dst = append(dst, c.anchor.Add(off))
	}
	return dst
}

// Shift moves the cluster dx columns to the right (negative moves left).
func (c *Cluster) Shift(dx int) bool {
	step := core.Right.Scale(float64(dx * c.m.grid.CellSize()))
	return c.apply(func(p core.Vec2) core.Vec2 { return p.Add(step) })
}

// Left moves the cluster one column left.
func (c *Cluster) Left() bool {
	return c.Shift(-1)
}

// Right moves the cluster one column right.
func (c *Cluster) Right() bool {
	return c.Shift(1)
}

// SoftDrop moves the cluster one row down.
func (c *Cluster) SoftDrop() bool {
	step := core.Down.Scale(float64(c.m.grid.CellSize()))
	return c.apply(func(p core.Vec2) core.Vec2 { return p.Add(step) })
}

// HardDrop drops the cluster until it lands and returns the rows fallen.
func (c *Cluster) HardDrop() int {
	n := 0
	for c.SoftDrop() {
		n++
	}
	return n
}

// Rotate turns the cluster a quarter around its middle cell.
func (c *Cluster) Rotate(clockwise bool) bool {
	pivot := c.anchor.Add(c.offsets[len(c.offsets)/2])
	return c.apply(func(p core.Vec2) core.Vec2 {
		rel := p.Sub(pivot)
		if clockwise {
			return pivot.Add(rel.RotateCW())
		}
		return pivot.Add(rel.RotateCCW())
	})
}

// apply moves every cell through fn as one unit. The cluster first vacates
// its cells; if any destination is outside the grid or not empty, the old
// cells are restored and nothing changes.
func (c *Cluster) apply(fn func(core.Vec2) core.Vec2) bool {
	g := c.m.grid
	self := grid.Block(c.ID())

	for _, off := range c.offsets {
		g.SetAt(grid.Empty, c.anchor.Add(off))
	}

	c.next = c.next[:0]
	for _, off := range c.offsets {
		p := fn(c.anchor.Add(off))
		if g.CheckAt(p, false) != grid.KindEmpty {
			for _, off := range c.offsets {
				g.SetAt(self, c.anchor.Add(off))
			}
			return false
		}
		c.next = append(c.next, p)
	}

	c.anchor = c.next[0]
	for i, p := range c.next {
		c.offsets[i] = p.Sub(c.anchor)
		g.SetAt(self, p)
	}
	return true
}

// Disable clears the cells still tagged with this cluster and returns it to
// the pool.
func (c *Cluster) Disable() {
	g := c.m.grid
	self := grid.Block(c.ID())
	for _, off := range c.offsets {
		p := c.anchor.Add(off)
		if g.GetAt(p) == self {
			g.SetAt(grid.Empty, p)
		}
	}
	c.anchor = core.Zero
	c.offsets = c.offsets[:0]
	c.next = c.next[:0]
	c.color = core.ColorDefault
	c.controller = nil
	c.Release()
}
