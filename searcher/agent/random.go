package agent

import (
	"cattrap/experiments/metrics"
	"cattrap/game"
	"cattrap/searcher"
	"context"
	"time"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	random *searcher.Random
}

// NewRandomAgent returns the baseline that steps in a uniformly drawn legal
// direction.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{random: searcher.NewRandom(rng)}
}

func (a randomAgent) FindMove(ctx context.Context, b *game.Board) (game.Coord, float64, metrics.SearchMetric) {
	start := time.Now()
	move, value := a.random.FindMove(ctx, b)
	return move, value, metrics.SearchMetric{Strategy: a.Name(), Duration: time.Since(start)}
}

func (a randomAgent) Name() string {
	return "random"
}
