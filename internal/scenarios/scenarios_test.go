package scenarios

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/registry"
)

type recorder struct {
	w, h   int
	rng    *rand.Rand
	walls  map[[2]int]bool
	worms  map[[2]int]int
	fruits map[[2]int]bool
}

func newRecorder(w, h int) *recorder {
	return &recorder{
		w: w, h: h,
		rng:    rand.New(rand.NewSource(1)),
		walls:  make(map[[2]int]bool),
		worms:  make(map[[2]int]int),
		fruits: make(map[[2]int]bool),
	}
}

func (r *recorder) Width() int       { return r.w }
func (r *recorder) Height() int      { return r.h }
func (r *recorder) Rand() *rand.Rand { return r.rng }

func (r *recorder) SpawnWorm(x, y, length int, _ core.Color) bool {
	c := [2]int{x, y}
	if x < 0 || y < 0 || x >= r.w || y >= r.h || r.walls[c] {
		return false
	}
	if _, taken := r.worms[c]; taken {
		return false
	}
	r.worms[c] = length
	return true
}

func (r *recorder) SpawnFruit(x, y int) bool {
	c := [2]int{x, y}
	if x < 0 || y < 0 || x >= r.w || y >= r.h || r.walls[c] || r.fruits[c] {
		return false
	}
	if _, taken := r.worms[c]; taken {
		return false
	}
	r.fruits[c] = true
	return true
}

func (r *recorder) PlaceWall(x, y, w, h int) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			r.walls[[2]int{cx, cy}] = true
		}
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"classic", "pocket", "arena"} {
		s, err := registry.Create(id)
		if err != nil {
			t.Errorf("Create(%q) error = %v", id, err)
			continue
		}
		if s.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, s.ID())
		}
	}
}

func TestClassic(t *testing.T) {
	r := newRecorder(20, 10)
	(&Classic{}).Populate(r)

	for _, c := range [][2]int{{0, 0}, {0, 9}, {19, 9}, {19, 0}} {
		if _, ok := r.worms[c]; !ok {
			t.Errorf("no worm in corner %v", c)
		}
	}
	for x := 0; x < 20; x += 2 {
		if _, ok := r.worms[[2]int{x, 3}]; !ok {
			t.Errorf("no worm at (%d, 3)", x)
		}
	}
	if len(r.worms) != 14 {
		t.Errorf("spawned %d worms, expected 14", len(r.worms))
	}
}

func TestPocketSealsWorms(t *testing.T) {
	r := newRecorder(20, 9)
	(&Pocket{}).Populate(r)

	sealed := 0
	for c := range r.worms {
		x, y := c[0], c[1]
		if r.walls[[2]int{x - 1, y}] && r.walls[[2]int{x + 1, y}] &&
			r.walls[[2]int{x, y - 1}] && r.walls[[2]int{x, y + 1}] {
			sealed++
		}
	}
	if sealed != 5 {
		t.Errorf("sealed worms = %d, expected 5", sealed)
	}
	for _, c := range [][2]int{{10, 0}, {10, 8}} {
		if !r.fruits[c] {
			t.Errorf("no fruit at %v", c)
		}
	}
}

func TestArenaFrame(t *testing.T) {
	r := newRecorder(40, 20)
	(&Arena{}).Populate(r)

	for x := 0; x < 40; x++ {
		if !r.walls[[2]int{x, 0}] || !r.walls[[2]int{x, 19}] {
			t.Errorf("frame missing at column %d", x)
		}
	}
	for y := 0; y < 20; y++ {
		if !r.walls[[2]int{0, y}] || !r.walls[[2]int{39, y}] {
			t.Errorf("frame missing at row %d", y)
		}
	}
	if len(r.worms) != 20 {
		t.Errorf("spawned %d worms, expected 20", len(r.worms))
	}
}

func TestArenaFillsQuota(t *testing.T) {
	for _, size := range [][2]int{{40, 20}, {48, 20}, {80, 40}} {
		r := newRecorder(size[0], size[1])
		(&Arena{}).Populate(r)
		if want := size[0] * size[1] / 40; len(r.worms) != want {
			t.Errorf("%dx%d: spawned %d worms, expected %d", size[0], size[1], len(r.worms), want)
		}
	}
}
