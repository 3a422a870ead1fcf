package game

import "errors"

// Cell is the occupancy of a single hex tile.
type Cell uint8

const (
	Empty Cell = iota
	Blocked
	Escaper
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Blocked:
		return "blocked"
	case Escaper:
		return "escaper"
	default:
		return "unknown"
	}
}

// ErrInvalidMove is returned when a move targets a cell that is not empty.
var ErrInvalidMove = errors.New("invalid move")

// Score of a position where the escaper stands on the border
const EscapeScore = 100.0

// Score of a position where the escaper has no legal direction left
const TrappedScore = -EscapeScore

// Evaluates a non-terminal board. maximizing is true on the blocking side's
// layer of the search tree and false on the escaper's realized move.
type Evaluate func(b *Board, maximizing bool) float64
