// Package sim wires the grid, pools and managers into a world and drives it
// with fixed-step timers.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-worms/internal/block"
	"github.com/vovakirdan/tui-worms/internal/config"
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/fruit"
	"github.com/vovakirdan/tui-worms/internal/grid"
	"github.com/vovakirdan/tui-worms/internal/registry"
	"github.com/vovakirdan/tui-worms/internal/worm"
)

// Stats summarises the world.
type Stats struct {
	Steps    int // worm steps taken
	Falls    int // gravity steps taken
	Worms    int
	Segments int
	Clusters int
	Fruits   int
	Frozen   int // worms frozen since Populate
}

// World owns every simulation component. It is not safe for concurrent use.
type World struct {
	cfg    config.Config
	seed   int64
	logger *log.Logger
	rng    *rand.Rand

	grid   *grid.Grid
	worms  *worm.Manager
	blocks *block.Manager
	fruits *fruit.Manager
	pace   *config.Pace
	player *Player

	scenario     string
	wormTimer    float64
	gravityTimer float64
	steps        int
	falls        int
	frozen       int
}

// New builds a world from cfg. A zero seed is replaced by the clock.
func New(cfg config.Config, logger *log.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w := &World{
		cfg:    cfg,
		seed:   seed,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
		pace:   config.NewPace(cfg.Tick.Ramp),
	}

	var err error
	w.grid, err = grid.New(grid.Options{
		Width:      cfg.Grid.Width,
		Height:     cfg.Grid.Height,
		CellSize:   cfg.Grid.CellSize,
		LeftBorder: cfg.Grid.LeftBorder,
		TopBorder:  cfg.Grid.TopBorder,
	})
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	w.blocks, err = block.NewManager(w.grid, cfg.Pools.Clusters, cfg.Worm.MaxLength, logger)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	var freezer worm.Freezer
	if cfg.Worm.Blockify {
		freezer = w.blocks
	}
	w.worms, err = worm.NewManager(w.grid, worm.Options{
		WormCapacity:    cfg.Pools.Worms,
		SegmentCapacity: cfg.Pools.Segments,
		MaxLength:       cfg.Worm.MaxLength,
		Rand:            w.rng,
		Freezer:         freezer,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	w.fruits, err = fruit.NewManager(w.grid, cfg.Pools.Fruits, w.rng, logger)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	w.player = newPlayer(w)
	logger.Debug("world created", "seed", seed, "grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height))
	return w, nil
}

// Config returns the configuration the world was built from.
func (w *World) Config() config.Config { return w.cfg }

// Seed returns the effective RNG seed.
func (w *World) Seed() int64 { return w.seed }

// Grid returns the occupancy grid.
func (w *World) Grid() *grid.Grid { return w.grid }

// Worms returns the worm manager.
func (w *World) Worms() *worm.Manager { return w.worms }

// Blocks returns the cluster manager.
func (w *World) Blocks() *block.Manager { return w.blocks }

// Fruits returns the fruit manager.
func (w *World) Fruits() *fruit.Manager { return w.fruits }

// Player returns the player controller.
func (w *World) Player() *Player { return w.player }

// Scenario returns the ID of the populated scenario.
func (w *World) Scenario() string { return w.scenario }

// Width implements registry.Spawner.
func (w *World) Width() int { return w.grid.Width() }

// Height implements registry.Spawner.
func (w *World) Height() int { return w.grid.Height() }

// Rand implements registry.Spawner.
func (w *World) Rand() *rand.Rand { return w.rng }

// SpawnWorm implements registry.Spawner.
func (w *World) SpawnWorm(x, y, length int, color core.Color) bool {
	if length <= 0 {
		length = w.cfg.Worm.SpawnLength
	}
	if color == core.ColorDefault {
		color = core.WormPalette[w.rng.Intn(len(core.WormPalette))]
	}
	_, ok := w.worms.Spawn(x, y, length, color)
	return ok
}

// SpawnFruit implements registry.Spawner.
func (w *World) SpawnFruit(x, y int) bool {
	_, ok := w.fruits.SpawnAt(x, y)
	return ok
}

// PlaceWall implements registry.Spawner.
func (w *World) PlaceWall(x, y, width, height int) {
	w.grid.SetRect(grid.Wall, x, y, width, height)
}

// Populate clears the world and lays out the scenario, then scatters the
// configured amount of fruit.
func (w *World) Populate(s registry.Scenario) {
	w.Reset()
	w.scenario = s.ID()
	s.Populate(w)
	for w.fruits.Count() < w.cfg.Fruit.Initial {
		if _, ok := w.fruits.Spawn(); !ok {
			break
		}
	}
	w.player.reset()
	w.logger.Info("world populated",
		"scenario", s.ID(),
		"worms", w.worms.Worms().ActiveCount(),
		"fruits", w.fruits.Count())
}

// Reset empties the world. Pools keep their capacity.
func (w *World) Reset() {
	w.player.Release()
	w.worms.Reset()
	w.blocks.Reset()
	w.fruits.Reset()
	w.grid.Reset()
	w.wormTimer, w.gravityTimer = 0, 0
	w.steps, w.falls, w.frozen = 0, 0, 0
}

// Step moves every worm once, earlier pool slots first. A corrupt grid cell
// aborts the step and is returned as an error wrapping
// *grid.CorruptCellError.
func (w *World) Step() error {
	err := w.guard("step", func() {
		w.frozen += w.worms.MoveAll()
		w.steps++
	})
	if err == nil {
		w.player.sync()
	}
	return err
}

// Fall applies one gravity step to uncontrolled clusters.
func (w *World) Fall() error {
	return w.guard("fall", func() {
		w.blocks.Fall()
		w.falls++
	})
}

// WormInterval returns the current worm timer interval in seconds.
func (w *World) WormInterval() float64 {
	return w.pace.Interval(w.cfg.Tick.Worm, w.steps)
}

// Advance accumulates dt seconds of real time and fires every step that
// became due. It returns the number of worm steps taken.
func (w *World) Advance(dt float64) (int, error) {
	stepped := 0

	w.wormTimer += dt
	for {
		interval := w.WormInterval()
		if w.wormTimer < interval {
			break
		}
		w.wormTimer -= interval
		if err := w.Step(); err != nil {
			return stepped, err
		}
		stepped++
	}

	if g := w.cfg.Tick.Gravity; g > 0 {
		w.gravityTimer += dt
		for w.gravityTimer >= g {
			w.gravityTimer -= g
			if err := w.Fall(); err != nil {
				return stepped, err
			}
		}
	}

	// Rendered positions cover one cell per worm interval.
	cell := float64(w.grid.CellSize())
	w.worms.Interpolate(cell * dt / w.WormInterval())
	return stepped, nil
}

// Stats returns the current counters.
func (w *World) Stats() Stats {
	return Stats{
		Steps:    w.steps,
		Falls:    w.falls,
		Worms:    w.worms.Worms().ActiveCount(),
		Segments: w.worms.Segments().ActiveCount(),
		Clusters: w.blocks.Clusters().ActiveCount(),
		Fruits:   w.fruits.Count(),
		Frozen:   w.frozen,
	}
}

// ASCII returns the diagnostic text rendering of the grid.
func (w *World) ASCII() (string, error) {
	return w.grid.Render()
}

func (w *World) guard(op string, fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		var cerr *grid.CorruptCellError
		if !ok || !errors.As(e, &cerr) {
			panic(r)
		}
		w.logger.Error("aborted", "op", op, "x", cerr.X, "y", cerr.Y, "tag", cerr.Tag)
		err = fmt.Errorf("sim: %s: %w", op, cerr)
	}()
	fn()
	return nil
}

var _ registry.Spawner = (*World)(nil)
