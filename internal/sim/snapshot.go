package sim

import (
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/grid"
)

// Snapshot contains the observable world state for determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Steps    int
	Falls    int
	Frozen   int
	Worms    int
	Clusters int
	Fruits   int

	// Cells holds one kind per cell, row-major.
	Cells []int

	// Worm state (each worm is 6 ints: ID, Length, LengthCap, HeadX, HeadY, DirIndex)
	WormData []int
}

// Snapshot returns the current world state.
func (w *World) Snapshot() Snapshot {
	g := w.grid
	cells := make([]int, 0, g.Width()*g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cells = append(cells, int(g.Get(x, y).Kind))
		}
	}

	var wormData []int
	for wm := range w.worms.Active() {
		hx, hy := g.ToGrid(wm.Head().Target)
		wormData = append(wormData,
			wm.ID(), wm.Length(), wm.LengthCap(), hx, hy, directionIndex(wm.Direction()))
	}

	st := w.Stats()
	return Snapshot{
		Steps:    st.Steps,
		Falls:    st.Falls,
		Frozen:   st.Frozen,
		Worms:    st.Worms,
		Clusters: st.Clusters,
		Fruits:   st.Fruits,
		Cells:    cells,
		WormData: wormData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Steps)
	h = h*31 + uint64(snap.Falls)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Frozen)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Worms)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Clusters) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Fruits)   //#nosec G115 -- hash computation

	for _, v := range snap.Cells {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.WormData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}

// Count returns how many cells of the given kind the snapshot holds.
func (snap *Snapshot) Count(k grid.Kind) int {
	n := 0
	for _, v := range snap.Cells {
		if grid.Kind(v) == k {
			n++
		}
	}
	return n
}

// directionIndex returns the position of d in core.Directions, or -1.
func directionIndex(d core.Vec2) int {
	for i, dir := range core.Directions {
		if d == dir {
			return i
		}
	}
	return -1
}
