package searcher

import (
	"cattrap/game"
	"context"
	"time"
)

// Remaining time below which a search gives up and unwinds
const SafetyMargin = 5 * time.Millisecond

// Time budget of a search that was not given one
const DefaultDuration = 5 * time.Second

// Unbounded lets the search run until the board's cell count in plies.
const Unbounded = -1

type Strategy interface {
	// FindMove returns the escaper's next coordinate and the search value.
	// The coordinate is the escaper's current one when it is trapped and
	// game.NoCoord when time ran out before any result was safe to use.
	FindMove(ctx context.Context, b *game.Board) (game.Coord, float64)
}

// fullDepth is the depth bound that lets a search play the board out.
func fullDepth(b *game.Board) int {
	return b.Size() * b.Size()
}
