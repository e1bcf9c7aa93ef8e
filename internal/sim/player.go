package sim

import (
	"github.com/vovakirdan/tui-worms/internal/block"
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/worm"
)

// Player is the human controller. It possesses at most one worm at a time
// and keeps control of the cluster that worm freezes into.
type Player struct {
	world   *World
	pos     core.Vec2
	worm    *worm.Worm
	cluster *block.Cluster
}

func newPlayer(w *World) *Player {
	p := &Player{world: w}
	p.reset()
	return p
}

// Name implements worm.Controller.
func (p *Player) Name() string {
	return "player"
}

// Position returns the world position used to find the nearest worm.
func (p *Player) Position() core.Vec2 {
	return p.pos
}

// Worm returns the possessed worm, or nil.
func (p *Player) Worm() *worm.Worm {
	return p.worm
}

// Cluster returns the controlled cluster, or nil.
func (p *Player) Cluster() *block.Cluster {
	return p.cluster
}

// Active reports whether the player controls anything.
func (p *Player) Active() bool {
	return p.worm != nil || p.cluster != nil
}

func (p *Player) reset() {
	g := p.world.grid
	p.pos = g.ToWorld(g.Width()/2, g.Height()/2)
	p.worm = nil
	p.cluster = nil
}

// Possess takes over the worm nearest to the player's position within the
// configured range. It reports false when no worm is in range.
func (p *Player) Possess() bool {
	if p.Active() {
		return false
	}
	w := p.world
	maxDist := w.cfg.Worm.PossessRange * float64(w.grid.CellSize())
	target, ok := w.worms.NearestWorm(p.pos, maxDist)
	if !ok || target.Controller() != nil {
		return false
	}
	target.Possess(p)
	p.worm = target
	p.pos = target.Head().Target
	w.logger.Debug("possessed", "worm", target.ID())
	return true
}

// Release hands the worm or cluster back to the simulation.
func (p *Player) Release() {
	if p.worm != nil {
		p.worm.Unpossess()
		p.worm = nil
	}
	if p.cluster != nil {
		p.cluster.Unpossess()
		p.cluster = nil
	}
}

// Command applies one player action and reports whether it changed
// anything. On a worm, steering actions turn it and Drop freezes it on the
// spot, handing the resulting cluster to the player. On a cluster, Left and
// Right shift, Down soft-drops, Up rotates clockwise and Drop hard-drops.
// A corrupt grid cell met along the way is logged and the command fails.
func (p *Player) Command(a core.Action) bool {
	switch a {
	case core.ActionPossess:
		return p.Possess()
	case core.ActionRelease:
		active := p.Active()
		p.Release()
		return active
	}

	if wm := p.worm; wm != nil {
		var changed bool
		err := p.world.guard("command", func() {
			if a == core.ActionDrop {
				changed = wm.Freeze() == worm.StateFrozen
				p.sync()
				return
			}
			if d, ok := a.Direction(); ok {
				changed = wm.SetDirection(d)
			}
		})
		return err == nil && changed
	}

	if c := p.cluster; c != nil {
		var moved bool
		err := p.world.guard("command", func() {
			switch a {
			case core.ActionLeft:
				moved = c.Left()
			case core.ActionRight:
				moved = c.Right()
			case core.ActionDown:
				moved = c.SoftDrop()
			case core.ActionUp:
				moved = c.Rotate(true)
			case core.ActionDrop:
				moved = c.HardDrop() > 0
			}
		})
		if err != nil {
			return false
		}
		if moved {
			p.pos = c.Anchor()
		}
		return moved
	}
	return false
}

// sync follows the possessed worm after a step. A frozen worm hands its
// controller to the cluster it became, which the player then steers.
func (p *Player) sync() {
	if p.worm == nil {
		return
	}
	if p.worm.Enabled() && p.worm.Controller() == p {
		p.pos = p.worm.Head().Target
		return
	}
	p.worm = nil
	for c := range p.world.blocks.Active() {
		if c.Controller() == p {
			p.cluster = c
			p.pos = c.Anchor()
			p.world.logger.Debug("controlling cluster", "cluster", c.ID())
			return
		}
	}
}

var _ worm.Controller = (*Player)(nil)
