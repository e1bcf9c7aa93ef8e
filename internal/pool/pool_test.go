package pool

import (
	"errors"
	"math/rand"
	"testing"
)

type item struct {
	Object
	value int
}

func (it *item) Disable() {
	it.value = 0
	it.Release()
}

func newItemPool(t *testing.T, size int) *Pool[*item] {
	t.Helper()
	p, err := New("items", size, func() *item { return &item{} })
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func checkPartition(t *testing.T, p *Pool[*item]) {
	t.Helper()
	for i := 0; i < p.Len(); i++ {
		enabled := p.At(i).Enabled()
		if i < p.EnableIndex() && !enabled {
			t.Errorf("slot %d below enable index %d is disabled", i, p.EnableIndex())
		}
		if i >= p.EnableIndex() && enabled {
			t.Errorf("slot %d at/after enable index %d is enabled", i, p.EnableIndex())
		}
	}
}

func TestNewInvalidSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		_, err := New("bad", size, func() *item { return &item{} })
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(size=%d) error = %v, expected ErrInvalidSize", size, err)
		}
	}
}

func TestNewAssignsIDs(t *testing.T) {
	p := newItemPool(t, 4)
	for i := 0; i < p.Len(); i++ {
		if p.At(i).ID() != i {
			t.Errorf("At(%d).ID() = %d, expected %d", i, p.At(i).ID(), i)
		}
		if p.At(i).Enabled() {
			t.Errorf("At(%d) should start disabled", i)
		}
	}
}

func TestSortDefragmentationExample(t *testing.T) {
	p := newItemPool(t, 5)

	var items [5]*item
	for i := range items {
		v, ok := p.Enable()
		if !ok {
			t.Fatalf("Enable() #%d failed", i+1)
		}
		items[i] = v
	}
	p1, p2, p3, p4, p5 := items[0], items[1], items[2], items[3], items[4]

	p1.Disable()
	p3.Disable()

	for i, want := range items {
		if p.At(i) != want {
			t.Errorf("before sort At(%d) = p%d, expected p%d", i, p.At(i).ID()+1, want.ID()+1)
		}
	}

	if !p.HasAvailable(2) {
		t.Error("HasAvailable(2) = false, expected true")
	}
	if p.HasAvailable(3) {
		t.Error("HasAvailable(3) = true, expected false")
	}
	if p.EnableIndex() != 3 {
		t.Errorf("EnableIndex() = %d, expected 3", p.EnableIndex())
	}

	want := []*item{p5, p2, p4, p3, p1}
	for i, w := range want {
		if p.At(i) != w {
			t.Errorf("after sort At(%d) = p%d, expected p%d", i, p.At(i).ID()+1, w.ID()+1)
		}
	}
	checkPartition(t, p)
}

func TestEnableSaturated(t *testing.T) {
	p := newItemPool(t, 2)
	p.Enable()
	p.Enable()

	if _, ok := p.Enable(); ok {
		t.Error("Enable() on a full pool should fail")
	}

	// Freeing one slot makes Enable succeed again through Sort.
	p.At(0).Disable()
	v, ok := p.Enable()
	if !ok {
		t.Fatal("Enable() after Disable should succeed")
	}
	if v.ID() != 0 {
		t.Errorf("Enable() returned ID %d, expected recycled ID 0", v.ID())
	}
	if p.ActiveCount() != 2 {
		t.Errorf("ActiveCount() = %d, expected 2", p.ActiveCount())
	}
}

func TestPartitionInvariantRandom(t *testing.T) {
	p := newItemPool(t, 32)
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		if rng.Intn(3) > 0 {
			p.Enable()
		} else if p.EnableIndex() > 0 {
			p.At(rng.Intn(p.EnableIndex())).Disable()
		}
		if round%10 == 9 {
			p.Sort()
			checkPartition(t, p)
		}
	}
}

func TestGetByID(t *testing.T) {
	p := newItemPool(t, 3)
	a, _ := p.Enable()
	b, _ := p.Enable()
	a.Disable()
	p.Sort()

	got, ok := p.Get(b.ID())
	if !ok || got != b {
		t.Errorf("Get(%d) = %v, %v; expected b", b.ID(), got, ok)
	}
	if _, ok := p.Get(3); ok {
		t.Error("Get(3) should be out of range")
	}
	if _, ok := p.Get(-1); ok {
		t.Error("Get(-1) should be out of range")
	}
}

func TestActiveAndReset(t *testing.T) {
	p := newItemPool(t, 4)
	for i := 0; i < 3; i++ {
		v, _ := p.Enable()
		v.value = i + 1
	}
	p.At(1).Disable()

	var ids []int
	for v := range p.Active() {
		ids = append(ids, v.ID())
	}
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 2 {
		t.Errorf("Active() ids = %v, expected [0 2]", ids)
	}

	p.Reset()
	if p.EnableIndex() != 0 {
		t.Errorf("EnableIndex() after Reset = %d, expected 0", p.EnableIndex())
	}
	for i := 0; i < p.Len(); i++ {
		if p.At(i).Enabled() || p.At(i).value != 0 {
			t.Errorf("slot %d not reset", i)
		}
	}
}
