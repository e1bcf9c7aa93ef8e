// Package block converts frozen worms into block clusters and moves
// clusters as rigid units.
package block

import (
	"fmt"
	"io"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/grid"
	"github.com/vovakirdan/tui-worms/internal/pool"
	"github.com/vovakirdan/tui-worms/internal/worm"
)

// Manager owns the cluster pool.
type Manager struct {
	grid     *grid.Grid
	clusters *pool.Pool[*Cluster]
	logger   *log.Logger
}

// NewManager allocates capacity clusters, each able to hold maxLength cells.
func NewManager(g *grid.Grid, capacity, maxLength int, logger *log.Logger) (*Manager, error) {
	if g == nil {
		return nil, fmt.Errorf("block: nil grid")
	}
	if maxLength <= 0 {
		return nil, fmt.Errorf("block: max length must be positive, got %d", maxLength)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{grid: g, logger: logger}

	var err error
	m.clusters, err = pool.New("clusters", capacity, func() *Cluster {
		return &Cluster{
			m:       m,
			offsets: make([]core.Vec2, 0, maxLength),
			next:    make([]core.Vec2, 0, maxLength),
		}
	}, pool.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("block: %w", err)
	}
	return m, nil
}

// Clusters returns the cluster pool.
func (m *Manager) Clusters() *pool.Pool[*Cluster] {
	return m.clusters
}

// Active yields the enabled clusters in slot order.
func (m *Manager) Active() iter.Seq[*Cluster] {
	return m.clusters.Active()
}

// Get returns the cluster with the given pool ID.
func (m *Manager) Get(id int) (*Cluster, bool) {
	return m.clusters.Get(id)
}

// Spawn takes over the visible cells of w. Every cell is retagged from the
// worm straight to the new cluster; none is ever empty in between. Spawn
// fails softly when the pool is exhausted, leaving the grid untouched.
func (m *Manager) Spawn(w *worm.Worm) (*Cluster, bool) {
	c, ok := m.clusters.Enable()
	if !ok {
		return nil, false
	}

	c.next = w.VisibleTargets(c.next[:0])
	c.anchor = c.next[0]
	c.offsets = c.offsets[:0]
	for _, p := range c.next {
		c.offsets = append(c.offsets, p.Sub(c.anchor))
	}
	c.color = w.Color()
	c.controller = w.Controller()

	self := grid.Block(c.ID())
	for _, p := range c.next {
		m.grid.SetAt(self, p)
	}
	m.logger.Debug("cluster spawned", "cluster", c.ID(), "worm", w.ID(), "cells", len(c.offsets))
	return c, true
}

// Freeze implements worm.Freezer.
func (m *Manager) Freeze(w *worm.Worm) bool {
	_, ok := m.Spawn(w)
	return ok
}

// Fall drops every uncontrolled cluster by one row where possible and
// returns how many moved.
func (m *Manager) Fall() int {
	moved := 0
	for c := range m.clusters.Active() {
		if c.controller != nil {
			continue
		}
		if c.SoftDrop() {
			moved++
		}
	}
	return moved
}

// CellCount returns the number of cells held by active clusters.
func (m *Manager) CellCount() int {
	n := 0
	for c := range m.clusters.Active() {
		n += c.Count()
	}
	return n
}

// Reset disables every cluster.
func (m *Manager) Reset() {
	m.clusters.Reset()
}

var _ worm.Freezer = (*Manager)(nil)
