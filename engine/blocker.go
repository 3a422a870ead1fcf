package engine

import (
	"cattrap/game"
	"context"
	"errors"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

var ErrNoEmptyCell = errors.New("no empty cell to block")

// Blocker chooses the tile to block before each escaper move.
type Blocker interface {
	PlaceBlock(ctx context.Context, b *game.Board) (game.Coord, error)
}

type randomBlocker struct {
	rng *rand.Rand
}

// NewRandomBlocker blocks a uniformly drawn empty tile.
func NewRandomBlocker(rng *rand.Rand) Blocker {
	return randomBlocker{rng: rng}
}

func (r randomBlocker) PlaceBlock(_ context.Context, b *game.Board) (game.Coord, error) {
	cells := slices.Collect(b.EmptyCells())
	if len(cells) == 0 {
		return game.NoCoord, ErrNoEmptyCell
	}
	return cells[r.rng.Intn(len(cells))], nil
}

type adjacentBlocker struct {
	rng *rand.Rand
}

// NewAdjacentBlocker blocks one of the escaper's open neighbours, or any
// empty tile once the escaper is boxed in.
func NewAdjacentBlocker(rng *rand.Rand) Blocker {
	return adjacentBlocker{rng: rng}
}

func (a adjacentBlocker) PlaceBlock(ctx context.Context, b *game.Board) (game.Coord, error) {
	open := lo.Map(b.LegalDirections(), func(d game.Direction, _ int) game.Coord {
		return game.Target(b.Escaper(), d)
	})
	if len(open) == 0 {
		return randomBlocker(a).PlaceBlock(ctx, b)
	}
	return open[a.rng.Intn(len(open))], nil
}
