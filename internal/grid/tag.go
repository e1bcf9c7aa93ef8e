package grid

import "fmt"

// Kind classifies a cell. The ordering is significant: Fruit and Empty are
// the only passable kinds and compare greater than every blocking kind.
type Kind uint8

const (
	KindOutOfBounds Kind = iota
	KindWorm
	KindBlock
	KindFruit
	KindEmpty
)

// Passable reports whether a worm may enter a cell of this kind.
func (k Kind) Passable() bool {
	return k >= KindFruit
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOutOfBounds:
		return "out-of-bounds"
	case KindWorm:
		return "worm"
	case KindBlock:
		return "block"
	case KindFruit:
		return "fruit"
	case KindEmpty:
		return "empty"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Tag is the occupant stored in a cell: a kind plus the pool ID of the
// occupying entity. Empty cells carry ID -1.
type Tag struct {
	Kind Kind
	ID   int
}

// Empty is the tag of an unoccupied cell.
var Empty = Tag{Kind: KindEmpty, ID: -1}

// Wall is the tag of a static block that belongs to no cluster.
var Wall = Tag{Kind: KindBlock, ID: -1}

// Worm returns the tag of a cell held by the worm with the given ID.
func Worm(id int) Tag {
	return Tag{Kind: KindWorm, ID: id}
}

// Block returns the tag of a cell held by the cluster with the given ID.
func Block(id int) Tag {
	return Tag{Kind: KindBlock, ID: id}
}

// Fruit returns the tag of a cell holding the fruit with the given ID.
func Fruit(id int) Tag {
	return Tag{Kind: KindFruit, ID: id}
}

// Glyph returns the diagnostic character for the tag.
func (t Tag) Glyph() (rune, bool) {
	switch t.Kind {
	case KindEmpty:
		return '.', true
	case KindWorm:
		return 'o', true
	case KindBlock:
		return 'x', true
	case KindFruit:
		return 'f', true
	default:
		return '?', false
	}
}

func (t Tag) String() string {
	if t.Kind == KindEmpty {
		return "empty"
	}
	return fmt.Sprintf("%s(%d)", t.Kind, t.ID)
}

// CorruptCellError reports a cell holding a tag no writer in the simulation
// produces. It signals a programming defect; the step that found it must
// abort.
type CorruptCellError struct {
	X, Y int
	Tag  Tag
}

func (e *CorruptCellError) Error() string {
	return fmt.Sprintf("grid: corrupt cell (%d,%d) holds %s", e.X, e.Y, e.Tag)
}
