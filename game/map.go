package game

// offset is a (row, col) delta to a neighbouring tile.
type offset struct {
	dRow int
	dCol int
}

// Rows are shifted half a tile to the right on odd rows, so the diagonal
// neighbours of even and odd rows use mirrored column offsets.
var (
	evenRowOffsets = [...]offset{
		E:  {0, 1},
		W:  {0, -1},
		NE: {-1, 0},
		NW: {-1, -1},
		SE: {1, 0},
		SW: {1, -1},
	}
	oddRowOffsets = [...]offset{
		E:  {0, 1},
		W:  {0, -1},
		NE: {-1, 1},
		NW: {-1, 0},
		SE: {1, 1},
		SW: {1, 0},
	}
)

// Target resolves the neighbour of from in direction d. The result may lie
// outside the grid; callers check it with InBounds.
func Target(from Coord, d Direction) Coord {
	o := evenRowOffsets[d]
	if from.Row%2 != 0 {
		o = oddRowOffsets[d]
	}
	return Coord{Row: from.Row + o.dRow, Col: from.Col + o.dCol}
}

// Neighbours returns the six tiles around c in direction order, including
// ones that fall outside the grid.
func Neighbours(c Coord) []Coord {
	out := make([]Coord, 0, len(Directions))
	for _, d := range Directions {
		out = append(out, Target(c, d))
	}
	return out
}
