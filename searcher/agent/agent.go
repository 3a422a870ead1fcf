package agent

import (
	"cattrap/experiments/metrics"
	"cattrap/game"
	"context"
	"errors"
)

var ErrNoEscaper = errors.New("board has no escaper")

type Agent interface {
	// FindMove returns the escaper's next coordinate, the search value and
	// performance metrics (if collected) from the search
	FindMove(ctx context.Context, b *game.Board) (game.Coord, float64, metrics.SearchMetric)
	Name() string
}

// New builds the agent selected by cfg. The configuration is validated first,
// so no search starts with a malformed one.
func New(cfg Config, options ...Option) (Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(options)
	if cfg.Random {
		return NewRandomAgent(o.rng), nil
	}
	return newSearchAgent(cfg, o)
}

// ComputeMove answers a single move request: it validates cfg, builds a fresh
// agent and runs one search on b.
func ComputeMove(ctx context.Context, b *game.Board, cfg Config) (game.Coord, float64, error) {
	if b.Escaper() == game.NoCoord {
		return game.NoCoord, 0, ErrNoEscaper
	}
	a, err := New(cfg)
	if err != nil {
		return game.NoCoord, 0, err
	}
	move, value, _ := a.FindMove(ctx, b)
	return move, value, nil
}
