package game

import "fmt"

// Coord addresses a tile by row and column in the offset layout.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoCoord marks an absent escaper, and doubles as the timeout result of a search.
var NoCoord = Coord{Row: -1, Col: -1}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction is one of the six hex neighbours.
type Direction uint8

const (
	E Direction = iota
	W
	NE
	NW
	SE
	SW
)

// Directions lists every direction in the order legal moves are generated.
var Directions = [...]Direction{E, W, NE, NW, SE, SW}

func (d Direction) String() string {
	switch d {
	case E:
		return "E"
	case W:
		return "W"
	case NE:
		return "NE"
	case NW:
		return "NW"
	case SE:
		return "SE"
	case SW:
		return "SW"
	default:
		return "?"
	}
}

// ParseDirection maps a compass name back to its Direction.
func ParseDirection(name string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}
