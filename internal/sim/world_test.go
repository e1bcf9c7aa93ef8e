package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-worms/internal/config"
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/grid"
	"github.com/vovakirdan/tui-worms/internal/registry"
)

// layout is a scenario built from a function.
type layout func(s registry.Spawner)

func (l layout) ID() string                  { return "test" }
func (l layout) Title() string               { return "Test" }
func (l layout) Populate(s registry.Spawner) { l(s) }

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	cfg.Grid = config.GridConfig{Width: 20, Height: 10, CellSize: 16, LeftBorder: -160, TopBorder: 80}
	cfg.Pools = config.PoolConfig{Worms: 16, Segments: 80, Clusters: 32, Fruits: 8}
	cfg.Fruit.Initial = 4
	return cfg
}

func newTestWorld(t *testing.T, cfg config.Config) *World {
	t.Helper()
	w, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w
}

func scattered(s registry.Spawner) {
	for x := 0; x < s.Width(); x += 3 {
		s.SpawnWorm(x, s.Height()/3, 0, core.ColorDefault)
		s.SpawnWorm(x, s.Height()*2/3, 3, core.ColorDefault)
	}
	s.PlaceWall(8, 4, 4, 2)
}

// sealed puts one worm of length 1 in a walled 1x1 pocket at (x, y).
func sealed(x, y int) layout {
	return func(s registry.Spawner) {
		s.PlaceWall(x-1, y, 1, 1)
		s.PlaceWall(x+1, y, 1, 1)
		s.PlaceWall(x, y-1, 1, 1)
		s.PlaceWall(x, y+1, 1, 1)
		s.SpawnWorm(x, y, 1, core.ColorYellow)
	}
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Worm.SpawnLength = 0
	if _, err := New(cfg, nil); err == nil {
		t.Error("New() should reject an invalid config")
	}
}

func TestPopulate(t *testing.T) {
	w := newTestWorld(t, testConfig())
	w.Populate(layout(scattered))

	st := w.Stats()
	if st.Worms != 14 {
		t.Errorf("Worms = %d, expected 14", st.Worms)
	}
	if st.Fruits != 4 {
		t.Errorf("Fruits = %d, expected 4", st.Fruits)
	}
	if n := w.Grid().Count(grid.KindBlock); n != 8 {
		t.Errorf("wall cells = %d, expected 8", n)
	}
	if w.Scenario() != "test" {
		t.Errorf("Scenario() = %q", w.Scenario())
	}

	// Populating again starts from scratch.
	w.Populate(layout(scattered))
	if w.Stats().Worms != 14 || w.Stats().Steps != 0 {
		t.Errorf("re-populate stats = %+v", w.Stats())
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		w := newTestWorld(t, testConfig())
		w.Populate(layout(scattered))
		for i := 0; i < 150; i++ {
			if err := w.Step(); err != nil {
				t.Fatalf("Step() error = %v", err)
			}
		}
		return w.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Frozen != snap2.Frozen {
		t.Errorf("Determinism failed: frozen counts differ. Run1=%d, Run2=%d", snap1.Frozen, snap2.Frozen)
	}
}

func TestOccupancyConservation(t *testing.T) {
	w := newTestWorld(t, testConfig())
	w.Populate(layout(scattered))

	for i := 0; i < 200; i++ {
		if err := w.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
		if got, want := w.Grid().Count(grid.KindWorm), w.Worms().VisibleLength(); got != want {
			t.Fatalf("tick %d: worm cells = %d, visible segments = %d", i, got, want)
		}
		for wm := range w.Worms().Active() {
			if wm.LengthCap() > w.Config().Worm.MaxLength || wm.Length() > wm.LengthCap() {
				t.Fatalf("tick %d: worm %d length %d cap %d", i, wm.ID(), wm.Length(), wm.LengthCap())
			}
		}
	}
}

func TestFreezeCreatesCluster(t *testing.T) {
	w := newTestWorld(t, testConfig())
	w.Populate(sealed(5, 5))

	if err := w.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	st := w.Stats()
	if st.Frozen != 1 || st.Clusters != 1 || st.Worms != 0 {
		t.Errorf("stats = %+v, expected one frozen worm turned cluster", st)
	}
	if tag := w.Grid().Get(5, 5); tag.Kind != grid.KindBlock || tag == grid.Wall {
		t.Errorf("pocket cell = %s, expected a cluster block", tag)
	}
}

func TestFreezeWithoutBlockify(t *testing.T) {
	cfg := testConfig()
	cfg.Worm.Blockify = false
	w := newTestWorld(t, cfg)
	w.Populate(sealed(5, 5))

	w.Step()
	if st := w.Stats(); st.Frozen != 1 || st.Clusters != 0 {
		t.Errorf("stats = %+v, expected the worm to vanish", st)
	}
	if w.Grid().Check(5, 5, false) != grid.KindEmpty {
		t.Error("vanished worm should leave its cell empty")
	}
}

func TestAdvanceAccumulates(t *testing.T) {
	cfg := testConfig()
	cfg.Tick.Worm = 0.3
	w := newTestWorld(t, cfg)
	w.Populate(layout(scattered))

	tests := []struct {
		dt    float64
		steps int
	}{
		{0.1, 0},
		{0.25, 1},
		{0.6, 2},
	}
	for _, tc := range tests {
		n, err := w.Advance(tc.dt)
		if err != nil {
			t.Fatalf("Advance(%v) error = %v", tc.dt, err)
		}
		if n != tc.steps {
			t.Errorf("Advance(%v) = %d steps, expected %d", tc.dt, n, tc.steps)
		}
	}
	if w.Stats().Steps != 3 {
		t.Errorf("Steps = %d, expected 3", w.Stats().Steps)
	}
}

func TestAdvanceGravity(t *testing.T) {
	cfg := testConfig()
	cfg.Tick.Worm = 10
	cfg.Tick.Gravity = 0.5
	w := newTestWorld(t, cfg)
	w.Populate(sealed(5, 5))
	w.Step()

	// Knock out the floor of the pocket.
	w.Grid().Set(grid.Empty, 5, 6)
	if _, err := w.Advance(0.5); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if w.Stats().Falls != 1 {
		t.Errorf("Falls = %d, expected 1", w.Stats().Falls)
	}
	if tag := w.Grid().Get(5, 6); tag.Kind != grid.KindBlock || tag == grid.Wall {
		t.Errorf("cell below = %s, expected the fallen cluster", tag)
	}
}

func TestCorruptCellAbortsStep(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = config.GridConfig{Width: 4, Height: 1, CellSize: 1}
	cfg.Fruit.Initial = 0
	w := newTestWorld(t, cfg)
	w.Populate(layout(func(s registry.Spawner) { s.SpawnWorm(0, 0, 1, core.ColorRed) }))
	w.Grid().Set(grid.Tag{Kind: grid.Kind(77), ID: 3}, 1, 0)

	err := w.Step()
	var cerr *grid.CorruptCellError
	if !errors.As(err, &cerr) {
		t.Fatalf("Step() error = %v, expected *grid.CorruptCellError", err)
	}
	if cerr.X != 1 || cerr.Y != 0 {
		t.Errorf("corrupt cell = (%d, %d), expected (1, 0)", cerr.X, cerr.Y)
	}
	if _, err := w.ASCII(); err == nil {
		t.Error("ASCII() should report the corrupt cell")
	}
}

func TestRender(t *testing.T) {
	cfg := testConfig()
	cfg.Fruit.Initial = 0
	w := newTestWorld(t, cfg)
	w.Populate(sealed(5, 5))

	scr := core.NewScreen(30, 12)
	w.Render(scr, 1, 1)

	if got := scr.GetCell(6, 6); got.Rune != GlyphHead || got.Color != core.ColorYellow {
		t.Errorf("worm head cell = %+v", got)
	}
	if got := scr.GetCell(5, 6); got.Rune != GlyphWall {
		t.Errorf("wall cell = %+v", got)
	}
	if got := scr.GetCell(1, 1); got.Rune != GlyphEmpty {
		t.Errorf("empty cell = %+v", got)
	}
	if w.Status() == "" {
		t.Error("Status() should not be empty")
	}
}
