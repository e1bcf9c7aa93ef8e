package scenarios

import (
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/registry"
)

func init() {
	registry.Register("pocket", func() registry.Scenario { return &Pocket{} })
}

// Pocket walls single worms into 1x1 pockets along the middle row, so they
// freeze on the first step, and leaves two free worms in the corners with a
// fruit on the top and bottom rows for them to chase.
type Pocket struct{}

func (p *Pocket) ID() string    { return "pocket" }
func (p *Pocket) Title() string { return "Pockets" }

func (p *Pocket) Populate(s registry.Spawner) {
	w, h := s.Width(), s.Height()
	mid := h / 2

	for x := 2; x < w-1; x += 4 {
		s.PlaceWall(x-1, mid, 1, 1)
		s.PlaceWall(x+1, mid, 1, 1)
		s.PlaceWall(x, mid-1, 1, 1)
		s.PlaceWall(x, mid+1, 1, 1)
		s.SpawnWorm(x, mid, 1, core.ColorBrightYellow)
	}

	s.SpawnWorm(0, 0, 0, core.ColorDefault)
	s.SpawnWorm(w-1, h-1, 0, core.ColorDefault)
	s.SpawnFruit(w/2, 0)
	s.SpawnFruit(w/2, h-1)
}
