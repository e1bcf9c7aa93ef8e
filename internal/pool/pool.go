// Package pool provides a fixed-capacity object pool with in-place
// defragmentation. Pooled values are allocated once at construction and are
// only ever toggled between enabled and disabled afterwards.
package pool

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/charmbracelet/log"
)

// ErrInvalidSize is returned by New when the requested capacity is not positive.
var ErrInvalidSize = errors.New("pool: size must be positive")

// Object carries the identity and enabled flag of a pooled value.
// Pooled types embed it and implement Disable themselves.
type Object struct {
	id      int
	enabled bool
}

// ID returns the identity assigned by the pool. It is unique within the pool
// and never changes.
func (o *Object) ID() int {
	return o.id
}

// Enabled reports whether the value is currently in use.
func (o *Object) Enabled() bool {
	return o.enabled
}

// Release marks the value as free. Pooled types call it from Disable after
// resetting their own fields.
func (o *Object) Release() {
	o.enabled = false
}

func (o *Object) base() *Object {
	return o
}

// Poolable is implemented by pointer types that embed Object.
type Poolable interface {
	ID() int
	Enabled() bool
	Disable()
	base() *Object
}

// Factory builds one pooled value. It is called size times by New and must
// not depend on global state.
type Factory[T Poolable] func() T

// Option configures a Pool.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger sets the logger used for defragmentation diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Pool is a fixed-size slot array. Slots below the enable index were handed
// out by Enable (some may have been disabled since); slots at or above it are
// always disabled and ready to be enabled.
type Pool[T Poolable] struct {
	name        string
	slots       []T
	byID        []T
	enableIndex int
	logger      *log.Logger
}

// New allocates size values through factory and returns a pool holding them
// all disabled, with IDs 0..size-1.
func New[T Poolable](name string, size int, factory Factory[T], opts ...Option) (*Pool[T], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %s has size %d", ErrInvalidSize, name, size)
	}
	if factory == nil {
		return nil, fmt.Errorf("pool: %s has no factory", name)
	}

	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pool[T]{
		name:   name,
		slots:  make([]T, size),
		byID:   make([]T, size),
		logger: o.logger.With("pool", name),
	}
	for i := range p.slots {
		v := factory()
		b := v.base()
		b.id = i
		b.enabled = false
		p.slots[i] = v
		p.byID[i] = v
	}
	return p, nil
}

// Name returns the pool name used in diagnostics.
func (p *Pool[T]) Name() string {
	return p.name
}

// Len returns the pool capacity.
func (p *Pool[T]) Len() int {
	return len(p.slots)
}

// EnableIndex returns the partition cursor.
func (p *Pool[T]) EnableIndex() int {
	return p.enableIndex
}

// At returns the value stored in slot i. Slot order changes on Sort.
func (p *Pool[T]) At(i int) T {
	return p.slots[i]
}

// Get returns the value with the given ID.
func (p *Pool[T]) Get(id int) (T, bool) {
	if id < 0 || id >= len(p.byID) {
		var zero T
		return zero, false
	}
	return p.byID[id], true
}

// Enable hands out the next disabled slot. When the cursor has reached
// capacity it defragments first; if nothing can be freed it returns false.
// Callers treat false as "skip this spawn", never as an error.
func (p *Pool[T]) Enable() (T, bool) {
	if p.enableIndex == len(p.slots) {
		if p.Sort() {
			var zero T
			return zero, false
		}
	}
	v := p.slots[p.enableIndex]
	v.base().enabled = true
	p.enableIndex++
	return v, true
}

// HasAvailable reports whether at least n slots can be enabled. It sorts the
// pool when the cursor alone does not leave enough room.
func (p *Pool[T]) HasAvailable(n int) bool {
	if p.enableIndex <= len(p.slots)-n {
		return true
	}
	p.Sort()
	return p.enableIndex <= len(p.slots)-n
}

// Sort partitions the slots in place so that every enabled value lies before
// the enable index and every disabled one at or after it. The scan runs once
// left to right; each disabled slot is swapped with the nearest enabled slot
// found walking back from the boundary, and the boundary shrinks past every
// disabled slot met on the way. Sort reports whether the pool is full.
func (p *Pool[T]) Sort() bool {
	before := p.enableIndex
	current := 0
	for current < p.enableIndex {
		if p.slots[current].Enabled() {
			current++
			continue
		}
		p.enableIndex--
		tail := p.enableIndex
		if tail > current && p.slots[tail].Enabled() {
			p.slots[current], p.slots[tail] = p.slots[tail], p.slots[current]
			current++
		}
	}

	freed := before - p.enableIndex
	if freed == 0 {
		p.logger.Warn("sort freed nothing", "size", len(p.slots))
	} else {
		p.logger.Debug("sorted", "freed", freed, "enabled", p.enableIndex)
	}
	return p.enableIndex == len(p.slots)
}

// ActiveCount returns the number of enabled values.
func (p *Pool[T]) ActiveCount() int {
	n := 0
	for i := 0; i < p.enableIndex; i++ {
		if p.slots[i].Enabled() {
			n++
		}
	}
	return n
}

// Active yields the enabled values in slot order. Values disabled during
// iteration are skipped once reached; the pool must not be sorted while
// iterating.
func (p *Pool[T]) Active() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < p.enableIndex; i++ {
			v := p.slots[i]
			if !v.Enabled() {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Reset disables every enabled value through its own Disable and rewinds the
// cursor.
func (p *Pool[T]) Reset() {
	for i := 0; i < p.enableIndex; i++ {
		if p.slots[i].Enabled() {
			p.slots[i].Disable()
		}
	}
	p.enableIndex = 0
}
