// Package fruit manages the pooled fruit worms eat to grow.
package fruit

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-worms/internal/grid"
	"github.com/vovakirdan/tui-worms/internal/pool"
)

// Fruit occupies one grid cell.
type Fruit struct {
	pool.Object
	X, Y int
}

// Disable returns the fruit to the pool.
func (f *Fruit) Disable() {
	f.X, f.Y = 0, 0
	f.Release()
}

// Manager places fruit on empty cells and replaces every eaten fruit.
type Manager struct {
	grid   *grid.Grid
	fruits *pool.Pool[*Fruit]
	rng    *rand.Rand
	logger *log.Logger
	cells  [][2]int
}

// NewManager allocates capacity fruits and attaches itself to g as the
// fruit consumer.
func NewManager(g *grid.Grid, capacity int, rng *rand.Rand, logger *log.Logger) (*Manager, error) {
	if g == nil {
		return nil, fmt.Errorf("fruit: nil grid")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p, err := pool.New("fruits", capacity, func() *Fruit { return &Fruit{} }, pool.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("fruit: %w", err)
	}
	m := &Manager{grid: g, fruits: p, rng: rng, logger: logger}
	g.SetFruitConsumer(m)
	return m, nil
}

// Count returns the number of fruits on the grid.
func (m *Manager) Count() int {
	return m.fruits.ActiveCount()
}

// Spawn places a fruit on a random empty cell. It fails softly when the
// pool is exhausted or the grid is full.
func (m *Manager) Spawn() (*Fruit, bool) {
	return m.spawn(-1, -1)
}

// SpawnAt places a fruit on the given cell if it is empty.
func (m *Manager) SpawnAt(x, y int) (*Fruit, bool) {
	if m.grid.Check(x, y, false) != grid.KindEmpty {
		return nil, false
	}
	return m.place(x, y)
}

func (m *Manager) spawn(skipX, skipY int) (*Fruit, bool) {
	cells := m.grid.EmptyCells(m.cells[:0])
	n := 0
	for _, c := range cells {
		if c[0] == skipX && c[1] == skipY {
			continue
		}
		cells[n] = c
		n++
	}
	m.cells = cells[:n]
	if n == 0 {
		return nil, false
	}
	c := m.cells[m.rng.Intn(len(m.cells))]
	return m.place(c[0], c[1])
}

func (m *Manager) place(x, y int) (*Fruit, bool) {
	f, ok := m.fruits.Enable()
	if !ok {
		return nil, false
	}
	f.X, f.Y = x, y
	m.grid.Set(grid.Fruit(f.ID()), x, y)
	return f, true
}

// Consume implements grid.FruitConsumer: the fruit at (x, y) is removed and
// a replacement appears on some other empty cell.
func (m *Manager) Consume(x, y int) {
	tag := m.grid.Get(x, y)
	if tag.Kind != grid.KindFruit {
		return
	}
	m.grid.Set(grid.Empty, x, y)
	if f, ok := m.fruits.Get(tag.ID); ok && f.Enabled() {
		f.Disable()
	}
	if _, ok := m.spawn(x, y); !ok {
		m.logger.Debug("no room for replacement fruit", "x", x, "y", y)
	}
}

// Reset removes every fruit from the grid.
func (m *Manager) Reset() {
	for f := range m.fruits.Active() {
		if m.grid.Get(f.X, f.Y) == grid.Fruit(f.ID()) {
			m.grid.Set(grid.Empty, f.X, f.Y)
		}
	}
	m.fruits.Reset()
}

var _ grid.FruitConsumer = (*Manager)(nil)
