package searcher

import (
	"cattrap/game"
	"context"

	"golang.org/x/exp/rand"
)

// Random steps in a uniformly drawn legal direction.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) FindMove(_ context.Context, b *game.Board) (game.Coord, float64) {
	return RandomMove(b, r.rng), 0
}

// RandomMove returns the escaper's own coordinate when no direction is open.
func RandomMove(b *game.Board, rng *rand.Rand) game.Coord {
	moves := b.LegalDirections()
	if len(moves) == 0 {
		return b.Escaper()
	}
	return game.Target(b.Escaper(), moves[rng.Intn(len(moves))])
}
