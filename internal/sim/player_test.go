package sim

import (
	"testing"

	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/grid"
	"github.com/vovakirdan/tui-worms/internal/registry"
)

func centreWorm(length int) layout {
	return func(s registry.Spawner) {
		s.SpawnWorm(s.Width()/2, s.Height()/2, length, core.ColorGreen)
	}
}

func TestPlayerPossessAndSteer(t *testing.T) {
	cfg := testConfig()
	cfg.Fruit.Initial = 0
	w := newTestWorld(t, cfg)
	w.Populate(centreWorm(3))
	p := w.Player()

	if !p.Command(core.ActionPossess) {
		t.Fatal("Possess should find the centre worm")
	}
	if p.Worm() == nil || p.Worm().Controller() != p {
		t.Fatal("worm should be controlled by the player")
	}
	if p.Command(core.ActionPossess) {
		t.Error("possessing twice should fail")
	}

	if !p.Command(core.ActionUp) {
		t.Error("steering up in open space should succeed")
	}
	w.Step()
	if got := p.Worm().Head().Target; got != p.Position() {
		t.Errorf("player position %v should follow the head %v", p.Position(), got)
	}
	if p.Worm().Direction() != core.Up {
		t.Errorf("Direction() = %v, expected up", p.Worm().Direction())
	}

	if !p.Command(core.ActionRelease) {
		t.Error("Release should report a change")
	}
	if p.Active() {
		t.Error("player should control nothing after release")
	}
}

func TestPlayerPossessOutOfRange(t *testing.T) {
	cfg := testConfig()
	cfg.Worm.PossessRange = 1
	w := newTestWorld(t, cfg)
	w.Populate(layout(func(s registry.Spawner) { s.SpawnWorm(0, 0, 1, core.ColorRed) }))

	if w.Player().Possess() {
		t.Error("Possess should fail when no worm is in range")
	}
}

func TestPlayerFreezesIntoCluster(t *testing.T) {
	cfg := testConfig()
	cfg.Fruit.Initial = 0
	w := newTestWorld(t, cfg)
	w.Populate(centreWorm(3))
	p := w.Player()
	p.Possess()
	p.Command(core.ActionLeft)
	w.Step()
	w.Step()

	if !p.Command(core.ActionDrop) {
		t.Fatal("Drop on a worm should freeze it")
	}
	c := p.Cluster()
	if c == nil || c.Controller() != p {
		t.Fatal("player should control the new cluster")
	}
	if c.Count() != 3 {
		t.Errorf("cluster cells = %d, expected 3", c.Count())
	}

	before := c.Anchor()
	if !p.Command(core.ActionDown) {
		t.Error("SoftDrop in open space should succeed")
	}
	if c.Anchor() == before {
		t.Error("cluster did not move")
	}
	if !p.Command(core.ActionUp) {
		t.Error("rotation in open space should succeed")
	}
	if !p.Command(core.ActionDrop) {
		t.Error("HardDrop from mid-air should move the cluster")
	}
	if p.Command(core.ActionDown) {
		t.Error("SoftDrop after landing should fail")
	}

	p.Command(core.ActionRelease)
	if c.Controller() != nil {
		t.Error("released cluster should have no controller")
	}
}

func TestPlayerLeftWithWormPoolReset(t *testing.T) {
	w := newTestWorld(t, testConfig())
	w.Populate(centreWorm(2))
	w.Player().Possess()
	w.Populate(centreWorm(2))

	if w.Player().Active() {
		t.Error("Populate should release the player")
	}
}

func TestPlayerSteerIntoCorruptCell(t *testing.T) {
	cfg := testConfig()
	cfg.Fruit.Initial = 0
	w := newTestWorld(t, cfg)
	w.Populate(centreWorm(1))
	p := w.Player()
	if !p.Possess() {
		t.Fatal("Possess should find the centre worm")
	}
	if !p.Command(core.ActionLeft) {
		t.Fatal("steering left in open space should succeed")
	}

	g := w.Grid()
	x, y := g.ToGrid(p.Worm().Head().Target.Add(core.Up.Scale(float64(g.CellSize()))))
	g.Set(grid.Tag{Kind: grid.Kind(77), ID: 1}, x, y)

	if p.Command(core.ActionUp) {
		t.Error("steering into a corrupt cell should fail")
	}
	if p.Worm() == nil || p.Worm().Direction() != core.Left {
		t.Error("worm should keep heading left")
	}
}
