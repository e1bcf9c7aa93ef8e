// Package grid implements the occupancy grid: a fixed 2D array of occupant
// tags with an exactly invertible mapping between world coordinates and
// cells. The grid arbitrates nothing; callers keep the one-occupant rule.
package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-worms/internal/core"
)

// FruitConsumer removes the fruit at a cell and spawns a replacement
// elsewhere.
type FruitConsumer interface {
	Consume(x, y int)
}

// Options describe the grid geometry.
type Options struct {
	Width      int // cells
	Height     int // cells
	CellSize   int // world units per cell
	LeftBorder int // world X of column 0
	TopBorder  int // world Y of row 0
}

// Grid is the occupancy grid. Row 0 is the top row; world Y grows upwards.
type Grid struct {
	opts  Options
	cells []Tag
	fruit FruitConsumer
}

// New creates an empty grid.
func New(opts Options) (*Grid, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("grid: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("grid: invalid cell size %d", opts.CellSize)
	}
	g := &Grid{
		opts:  opts,
		cells: make([]Tag, opts.Width*opts.Height),
	}
	g.Reset()
	return g, nil
}

// SetFruitConsumer attaches the collaborator used by Check when consuming.
func (g *Grid) SetFruitConsumer(f FruitConsumer) {
	g.fruit = f
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.opts.Width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.opts.Height
}

// CellSize returns the world size of one cell.
func (g *Grid) CellSize() int {
	return g.opts.CellSize
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.opts.Width && y < g.opts.Height
}

// ToGridX maps a world X coordinate to a column.
func (g *Grid) ToGridX(worldX float64) int {
	return floorDiv(int(math.Round(worldX))-g.opts.LeftBorder, g.opts.CellSize)
}

// ToGridY maps a world Y coordinate to a row.
func (g *Grid) ToGridY(worldY float64) int {
	return floorDiv(g.opts.TopBorder-int(math.Round(worldY)), g.opts.CellSize)
}

// ToWorldX maps a column to the world X of its origin.
func (g *Grid) ToWorldX(x int) float64 {
	return float64(g.opts.LeftBorder + g.opts.CellSize*x)
}

// ToWorldY maps a row to the world Y of its origin.
func (g *Grid) ToWorldY(y int) float64 {
	return float64(g.opts.TopBorder - g.opts.CellSize*y)
}

// ToGrid maps a world position to a cell.
func (g *Grid) ToGrid(p core.Vec2) (int, int) {
	return g.ToGridX(p.X), g.ToGridY(p.Y)
}

// ToWorld maps a cell to its world position.
func (g *Grid) ToWorld(x, y int) core.Vec2 {
	return core.V(g.ToWorldX(x), g.ToWorldY(y))
}

// Check classifies the cell at (x, y). Coordinates outside the grid yield
// KindOutOfBounds. With consume set, a fruit cell is eaten through the
// attached FruitConsumer before KindFruit is returned.
//
// Check panics with *CorruptCellError on a tag it does not recognise.
func (g *Grid) Check(x, y int, consume bool) Kind {
	if !g.inBounds(x, y) {
		return KindOutOfBounds
	}
	t := g.cells[y*g.opts.Width+x]
	switch t.Kind {
	case KindEmpty, KindWorm, KindBlock:
		return t.Kind
	case KindFruit:
		if consume && g.fruit != nil {
			g.fruit.Consume(x, y)
		}
		return KindFruit
	default:
		panic(&CorruptCellError{X: x, Y: y, Tag: t})
	}
}

// CheckAt is Check for a world position.
func (g *Grid) CheckAt(p core.Vec2, consume bool) Kind {
	x, y := g.ToGrid(p)
	return g.Check(x, y, consume)
}

// Get returns the tag at (x, y). Out-of-bounds cells report KindOutOfBounds.
func (g *Grid) Get(x, y int) Tag {
	if !g.inBounds(x, y) {
		return Tag{Kind: KindOutOfBounds, ID: -1}
	}
	return g.cells[y*g.opts.Width+x]
}

// GetAt is Get for a world position.
func (g *Grid) GetAt(p core.Vec2) Tag {
	x, y := g.ToGrid(p)
	return g.Get(x, y)
}

// Set overwrites the tag at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(t Tag, x, y int) {
	if !g.inBounds(x, y) {
		return
	}
	g.cells[y*g.opts.Width+x] = t
}

// SetAt is Set for a world position.
func (g *Grid) SetAt(t Tag, p core.Vec2) {
	x, y := g.ToGrid(p)
	g.Set(t, x, y)
}

// SetRect writes t into every cell of the w by h rectangle at (x, y).
func (g *Grid) SetRect(t Tag, x, y, w, h int) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			g.Set(t, cx, cy)
		}
	}
}

// Reset marks every cell empty.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Count returns the number of cells of the given kind.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, t := range g.cells {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// EmptyCells appends the coordinates of every empty cell to dst, row by row.
func (g *Grid) EmptyCells(dst [][2]int) [][2]int {
	for i, t := range g.cells {
		if t.Kind == KindEmpty {
			dst = append(dst, [2]int{i % g.opts.Width, i / g.opts.Width})
		}
	}
	return dst
}

// Render returns the grid as text, one line per row:
// '.' empty, 'o' worm, 'x' block, 'f' fruit.
func (g *Grid) Render() (string, error) {
	var sb strings.Builder
	sb.Grow((g.opts.Width + 1) * g.opts.Height)
	for y := 0; y < g.opts.Height; y++ {
		for x := 0; x < g.opts.Width; x++ {
			t := g.cells[y*g.opts.Width+x]
			r, ok := t.Glyph()
			if !ok {
				return "", &CorruptCellError{X: x, Y: y, Tag: t}
			}
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
