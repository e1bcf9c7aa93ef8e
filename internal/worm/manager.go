// Package worm implements worm locomotion: chains of pooled segments that
// crawl across the occupancy grid, grow by eating fruit and freeze into
// block clusters once they cannot move.
package worm

import (
	"fmt"
	"io"
	"iter"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/grid"
	"github.com/vovakirdan/tui-worms/internal/pool"
)

// Freezer converts an immobile worm into a static structure that takes over
// its cells. It reports false when no conversion slot is available.
type Freezer interface {
	Freeze(w *Worm) bool
}

// Options configure a Manager.
type Options struct {
	WormCapacity    int
	SegmentCapacity int
	MaxLength       int
	Rand            *rand.Rand
	Freezer         Freezer // nil means frozen worms simply vanish
	Logger          *log.Logger
}

// Manager owns the worm and segment pools and the shared collaborators every
// worm needs to move.
type Manager struct {
	grid      *grid.Grid
	worms     *pool.Pool[*Worm]
	segments  *pool.Pool[*Segment]
	rng       *rand.Rand
	freezer   Freezer
	maxLength int
	logger    *log.Logger
}

// NewManager allocates both pools up front.
func NewManager(g *grid.Grid, opts Options) (*Manager, error) {
	if g == nil {
		return nil, fmt.Errorf("worm: nil grid")
	}
	if opts.MaxLength <= 0 {
		return nil, fmt.Errorf("worm: max length must be positive, got %d", opts.MaxLength)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := &Manager{
		grid:      g,
		rng:       opts.Rand,
		freezer:   opts.Freezer,
		maxLength: opts.MaxLength,
		logger:    opts.Logger,
	}

	var err error
	m.worms, err = pool.New("worms", opts.WormCapacity, func() *Worm {
		return &Worm{m: m, head: noSegment, tail: noSegment}
	}, pool.WithLogger(opts.Logger))
	if err != nil {
		return nil, fmt.Errorf("worm: %w", err)
	}
	m.segments, err = pool.New("segments", opts.SegmentCapacity, newSegment, pool.WithLogger(opts.Logger))
	if err != nil {
		return nil, fmt.Errorf("worm: %w", err)
	}
	return m, nil
}

// SetFreezer replaces the freeze collaborator.
func (m *Manager) SetFreezer(f Freezer) {
	m.freezer = f
}

// Grid returns the occupancy grid the worms move on.
func (m *Manager) Grid() *grid.Grid {
	return m.grid
}

// MaxLength returns the configured length limit.
func (m *Manager) MaxLength() int {
	return m.maxLength
}

// Worms returns the worm pool.
func (m *Manager) Worms() *pool.Pool[*Worm] {
	return m.worms
}

// Segments returns the segment pool.
func (m *Manager) Segments() *pool.Pool[*Segment] {
	return m.segments
}

// Active yields the enabled worms in slot order.
func (m *Manager) Active() iter.Seq[*Worm] {
	return m.worms.Active()
}

// Get returns the worm with the given pool ID.
func (m *Manager) Get(id int) (*Worm, bool) {
	return m.worms.Get(id)
}

func (m *Manager) segment(id int) *Segment {
	s, _ := m.segments.Get(id)
	return s
}

// Spawn places a worm of the given length with its head at cell (x, y).
// The cell must be empty. Only the head is visible at first; the remaining
// segments sit hidden on the head cell and unfold as the worm moves.
// Spawn fails softly when either pool is exhausted.
func (m *Manager) Spawn(x, y, length int, color core.Color) (*Worm, bool) {
	if length < 1 {
		length = 1
	}
	if length > m.maxLength {
		length = m.maxLength
	}
	if m.grid.Check(x, y, false) != grid.KindEmpty {
		return nil, false
	}
	if !m.segments.HasAvailable(length) {
		m.logger.Debug("segment pool exhausted, spawn skipped", "length", length)
		return nil, false
	}
	w, ok := m.worms.Enable()
	if !ok {
		return nil, false
	}

	pos := m.grid.ToWorld(x, y)
	head, _ := m.segments.Enable()
	head.Position = pos
	head.Target = pos

	w.head = head.ID()
	w.tail = head.ID()
	w.length = 1
	w.lengthCap = 1
	w.color = color
	w.state = StateMoving
	w.growPending = false
	w.controller = nil

	for w.lengthCap < length {
		if !w.link() {
			break
		}
	}

	w.direction = m.RandomDirection(pos)
	m.grid.Set(grid.Worm(w.ID()), x, y)
	return w, true
}

// RandomDirection picks uniformly among the directions whose neighbouring
// cell is passable from pos, in core.Directions order. It returns core.Zero
// when every neighbour is blocked.
func (m *Manager) RandomDirection(pos core.Vec2) core.Vec2 {
	var candidates [len(core.Directions)]core.Vec2
	n := 0
	for _, d := range core.Directions {
		if m.passable(pos, d) {
			candidates[n] = d
			n++
		}
	}
	if n == 0 {
		return core.Zero
	}
	return candidates[m.rng.Intn(n)]
}

func (m *Manager) passable(from, dir core.Vec2) bool {
	next := from.Add(dir.Scale(float64(m.grid.CellSize())))
	return m.grid.CheckAt(next, false).Passable()
}

// MoveAll moves every active worm once, earlier slots first. It returns the
// number of worms that froze.
func (m *Manager) MoveAll() int {
	frozen := 0
	for w := range m.worms.Active() {
		if w.Move() == StateFrozen {
			frozen++
		}
	}
	return frozen
}

// Interpolate advances the rendered position of every active worm.
func (m *Manager) Interpolate(step float64) {
	for w := range m.worms.Active() {
		w.Interpolate(step)
	}
}

// NearestWorm returns the active worm whose head is closest to pos and
// strictly within maxDist.
func (m *Manager) NearestWorm(pos core.Vec2, maxDist float64) (*Worm, bool) {
	var nearest *Worm
	best := maxDist
	for w := range m.worms.Active() {
		d := w.Head().Target.Distance(pos)
		if d < best {
			nearest = w
			best = d
		}
	}
	return nearest, nearest != nil
}

// VisibleLength returns the sum of visible lengths over all active worms.
func (m *Manager) VisibleLength() int {
	n := 0
	for w := range m.worms.Active() {
		n += w.length
	}
	return n
}

// Reset disables every worm and segment.
func (m *Manager) Reset() {
	m.worms.Reset()
	m.segments.Reset()
}
