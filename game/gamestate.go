package game

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/rand"
)

// Block density bounds for a fresh random layout, as fractions of all tiles
const (
	MinBlockDensity = 0.067
	MaxBlockDensity = 0.13
)

// NewRandomBoard creates a board with the escaper in the centre and a random
// number of blocks between MinBlockDensity and MaxBlockDensity of the tiles.
func NewRandomBoard(size int, rng *rand.Rand) (*Board, error) {
	b, err := NewBoard(size, Center(size))
	if err != nil {
		return nil, err
	}

	total := float64(size * size)
	low := int(math.Round(MinBlockDensity * total))
	high := int(math.Round(MaxBlockDensity * total))
	// Never ask for more blocks than there are free tiles
	high = min(high, size*size-1)
	low = min(low, high)
	n := low + rng.Intn(high-low+1)

	for placed := 0; placed < n; {
		c := Coord{Row: rng.Intn(size), Col: rng.Intn(size)}
		if b.At(c) != Empty {
			continue
		}
		b.set(c, Blocked)
		placed++
	}
	return b, nil
}

// Tile symbols used by String and ParseBoard
const (
	emptySymbol   = '.'
	blockedSymbol = '#'
	escaperSymbol = 'C'
)

func (c Cell) symbol() byte {
	switch c {
	case Blocked:
		return blockedSymbol
	case Escaper:
		return escaperSymbol
	default:
		return emptySymbol
	}
}

// Rows returns one string per row with a symbol per tile.
func (b *Board) Rows() []string {
	rows := make([]string, b.size)
	for i := range b.size {
		var sb strings.Builder
		for j := range b.size {
			sb.WriteByte(b.cells[i*b.size+j].symbol())
		}
		rows[i] = sb.String()
	}
	return rows
}

// String draws the board with odd rows shifted right, so hex neighbours line up.
func (b *Board) String() string {
	var sb strings.Builder
	for i, row := range b.Rows() {
		if i%2 != 0 {
			sb.WriteByte(' ')
		}
		for j := 0; j < len(row); j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(row[j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads a board from rows of symbols ('.', '#', 'C'). Whitespace
// inside rows is ignored, so the output of String parses back. A board
// without 'C' has no escaper.
func ParseBoard(text string) (*Board, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		row := strings.Join(strings.Fields(line), "")
		if row != "" {
			rows = append(rows, row)
		}
	}
	return parseRows(rows)
}

func parseRows(rows []string) (*Board, error) {
	size := len(rows)
	if size == 0 || size%2 == 0 {
		return nil, fmt.Errorf("board must have a positive odd number of rows, got %d", size)
	}
	b := &Board{
		size:    size,
		cells:   make([]Cell, size*size),
		escaper: NoCoord,
	}
	for i, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d tiles, want %d", i, len(row), size)
		}
		for j := 0; j < size; j++ {
			c := Coord{Row: i, Col: j}
			switch row[j] {
			case emptySymbol:
			case blockedSymbol:
				b.set(c, Blocked)
			case escaperSymbol:
				if b.escaper != NoCoord {
					return nil, fmt.Errorf("second escaper at %v, first at %v", c, b.escaper)
				}
				b.set(c, Escaper)
				b.escaper = c
			default:
				return nil, fmt.Errorf("unknown tile %q at %v", row[j], c)
			}
		}
	}
	return b, nil
}

type boardJSON struct {
	Size int      `json:"size"`
	Rows []string `json:"rows"`
}

func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{Size: b.size, Rows: b.Rows()})
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var payload boardJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	parsed, err := parseRows(payload.Rows)
	if err != nil {
		return err
	}
	if payload.Size != 0 && payload.Size != parsed.size {
		return fmt.Errorf("board size %d does not match %d rows", payload.Size, parsed.size)
	}
	*b = *parsed
	return nil
}
