// Package scenarios contains the built-in initial layouts. Each layout
// registers itself with the registry in init().
package scenarios

import (
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/registry"
)

func init() {
	registry.Register("classic", func() registry.Scenario { return &Classic{} })
}

// Classic puts a worm in every corner and a row of worms across the upper
// third of the grid, every other column.
type Classic struct{}

func (c *Classic) ID() string    { return "classic" }
func (c *Classic) Title() string { return "Classic" }

func (c *Classic) Populate(s registry.Spawner) {
	w, h := s.Width(), s.Height()

	s.SpawnWorm(0, 0, 0, core.ColorDefault)
	s.SpawnWorm(0, h-1, 0, core.ColorDefault)
	s.SpawnWorm(w-1, h-1, 0, core.ColorDefault)
	s.SpawnWorm(w-1, 0, 0, core.ColorDefault)

	row := h * 3 / 10
	for x := 0; x < w; x += 2 {
		s.SpawnWorm(x, row, 0, core.ColorDefault)
	}
}
