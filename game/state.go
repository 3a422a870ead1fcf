package game

import (
	"fmt"
	"iter"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
)

// BoardHash identifies a board layout, escaper included.
type BoardHash uint64

// Board is the N×N hex grid together with the escaper's position.
// A Board is mutated in place; the search clones it before every ply.
type Board struct {
	size    int
	cells   []Cell // Row-major, size*size entries
	escaper Coord  // NoCoord when the escaper has been removed
}

// NewBoard returns an empty board of the given odd size with the escaper on start.
func NewBoard(size int, start Coord) (*Board, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("board size must be a positive odd number, got %d", size)
	}
	b := &Board{
		size:    size,
		cells:   make([]Cell, size*size),
		escaper: NoCoord,
	}
	if !b.InBounds(start) {
		return nil, fmt.Errorf("escaper start %v is outside a %dx%d board", start, size, size)
	}
	b.set(start, Escaper)
	b.escaper = start
	return b, nil
}

// Center returns the middle tile of a board of the given size.
func Center(size int) Coord {
	return Coord{Row: size / 2, Col: size / 2}
}

func (b *Board) Size() int {
	return b.size
}

// Escaper returns the escaper's coordinate, or NoCoord if it was removed.
func (b *Board) Escaper() Coord {
	return b.escaper
}

func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

// At returns the occupancy of c. Out-of-bounds tiles read as Blocked.
func (b *Board) At(c Coord) Cell {
	if !b.InBounds(c) {
		return Blocked
	}
	return b.cells[c.Row*b.size+c.Col]
}

func (b *Board) set(c Coord, cell Cell) {
	b.cells[c.Row*b.size+c.Col] = cell
}

func (b *Board) isEmpty(c Coord) bool {
	return b.InBounds(c) && b.cells[c.Row*b.size+c.Col] == Empty
}

// Clone returns a deep copy that shares nothing with b.
func (b *Board) Clone() *Board {
	cellsCopy := make([]Cell, len(b.cells))
	copy(cellsCopy, b.cells)

	return &Board{
		size:    b.size,
		cells:   cellsCopy,
		escaper: b.escaper,
	}
}

// LegalDirections returns the directions the escaper can step in: the
// neighbour must be on the grid and empty.
func (b *Board) LegalDirections() []Direction {
	if b.escaper == NoCoord {
		return nil
	}
	return lo.Filter(Directions[:], func(d Direction, _ int) bool {
		return b.isEmpty(Target(b.escaper, d))
	})
}

// MoveEscaper moves the escaper onto an empty tile and vacates its old tile.
func (b *Board) MoveEscaper(to Coord) error {
	if !b.isEmpty(to) {
		return fmt.Errorf("%w: escaper cannot move to %v (%s)", ErrInvalidMove, to, b.At(to))
	}
	if b.escaper != NoCoord {
		b.set(b.escaper, Empty)
	}
	b.set(to, Escaper)
	b.escaper = to
	return nil
}

// Block places a block on an empty tile.
func (b *Board) Block(c Coord) error {
	if !b.isEmpty(c) {
		return fmt.Errorf("%w: cannot block %v (%s)", ErrInvalidMove, c, b.At(c))
	}
	b.set(c, Blocked)
	return nil
}

// Unblock clears a block while editing a layout.
func (b *Board) Unblock(c Coord) error {
	if !b.InBounds(c) || b.At(c) != Blocked {
		return fmt.Errorf("%w: no block at %v", ErrInvalidMove, c)
	}
	b.set(c, Empty)
	return nil
}

// PlaceEscaper puts the escaper on c while editing a layout. A block on c is
// cleared first.
func (b *Board) PlaceEscaper(c Coord) error {
	if !b.InBounds(c) {
		return fmt.Errorf("%w: %v is off the board", ErrInvalidMove, c)
	}
	if b.At(c) == Blocked {
		b.set(c, Empty)
	}
	if b.escaper == c {
		return nil
	}
	return b.MoveEscaper(c)
}

// RemoveEscaper takes the escaper off the board, as happens when it runs out of time.
func (b *Board) RemoveEscaper() {
	if b.escaper != NoCoord {
		b.set(b.escaper, Empty)
	}
	b.escaper = NoCoord
}

// EscaperOnBoundary reports whether the escaper stands on the outer ring.
func (b *Board) EscaperOnBoundary() bool {
	if b.escaper == NoCoord {
		return false
	}
	last := b.size - 1
	return b.escaper.Row == 0 || b.escaper.Row == last || b.escaper.Col == 0 || b.escaper.Col == last
}

// EmptyCells yields every empty tile in row-major order.
func (b *Board) EmptyCells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i, cell := range b.cells {
			if cell != Empty {
				continue
			}
			if !yield(Coord{Row: i / b.size, Col: i % b.size}) {
				return
			}
		}
	}
}

// CountCells returns how many tiles hold the given cell value.
func (b *Board) CountCells(cell Cell) int {
	return lo.Count(b.cells, cell)
}

func (b *Board) Hash() BoardHash {
	buf := make([]byte, len(b.cells))
	for i, cell := range b.cells {
		buf[i] = byte(cell)
	}
	return BoardHash(xxhash.Sum64(buf))
}
