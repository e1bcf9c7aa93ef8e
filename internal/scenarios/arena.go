package scenarios

import (
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/registry"
)

func init() {
	registry.Register("arena", func() registry.Scenario { return &Arena{} })
}

// Arena frames the grid with walls, raises a pillar in the middle and drops
// worms on random free cells.
type Arena struct{}

func (a *Arena) ID() string    { return "arena" }
func (a *Arena) Title() string { return "Arena" }

func (a *Arena) Populate(s registry.Spawner) {
	w, h := s.Width(), s.Height()

	s.PlaceWall(0, 0, w, 1)
	s.PlaceWall(0, h-1, w, 1)
	s.PlaceWall(0, 0, 1, h)
	s.PlaceWall(w-1, 0, 1, h)

	pw, ph := w/8, h/4
	s.PlaceWall((w-pw)/2, (h-ph)/2, pw, ph)

	rng := s.Rand()
	want := w * h / 40
	budget := want * 10
	for tries := 0; want > 0 && tries < budget; tries++ {
		if w < 3 || h < 3 {
			break
		}
		x, y := 1+rng.Intn(w-2), 1+rng.Intn(h-2)
		if s.SpawnWorm(x, y, 0, core.ColorDefault) {
			want--
		}
	}
}
