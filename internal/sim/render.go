package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/grid"
)

// Glyphs used by Render.
const (
	GlyphEmpty = '·'
	GlyphWorm  = 'o'
	GlyphHead  = '@'
	GlyphBlock = '▓'
	GlyphWall  = '█'
	GlyphFruit = '*'
)

// Render draws the grid into dst with its top-left cell at (ox, oy).
// The player's worm head and cluster are drawn in bright white.
func (w *World) Render(dst *core.Screen, ox, oy int) {
	g := w.grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			r, c := w.cellGlyph(g.Get(x, y))
			dst.SetColored(ox+x, oy+y, r, c)
		}
	}

	for wm := range w.worms.Active() {
		x, y := g.ToGrid(wm.Head().Target)
		c := wm.Color()
		if wm.Controller() == w.player {
			c = core.ColorBrightWhite
		}
		dst.SetColored(ox+x, oy+y, GlyphHead, c)
	}
}

func (w *World) cellGlyph(t grid.Tag) (rune, core.Color) {
	switch t.Kind {
	case grid.KindWorm:
		if wm, ok := w.worms.Get(t.ID); ok {
			return GlyphWorm, wm.Color()
		}
		return GlyphWorm, core.ColorDefault
	case grid.KindBlock:
		if t == grid.Wall {
			return GlyphWall, core.ColorGray
		}
		if c, ok := w.blocks.Get(t.ID); ok {
			if c.Controller() == w.player {
				return GlyphBlock, core.ColorBrightWhite
			}
			return GlyphBlock, c.Color()
		}
		return GlyphBlock, core.ColorGray
	case grid.KindFruit:
		return GlyphFruit, core.ColorBrightRed
	default:
		return GlyphEmpty, core.ColorGray
	}
}

// Status returns a one-line summary for the HUD.
func (w *World) Status() string {
	st := w.Stats()
	ctrl := "watching"
	switch {
	case w.player.Worm() != nil:
		wm := w.player.Worm()
		ctrl = fmt.Sprintf("worm #%d heading %s", wm.ID(), core.DirectionName(wm.Direction()))
	case w.player.Cluster() != nil:
		ctrl = fmt.Sprintf("cluster #%d", w.player.Cluster().ID())
	}
	return fmt.Sprintf("%s | step %d | worms %d | clusters %d | frozen %d | fruit %d | %s",
		w.scenario, st.Steps, st.Worms, st.Clusters, st.Frozen, st.Fruits, ctrl)
}
