package agent

import (
	"cattrap/experiments/metrics"
	"cattrap/game"
	"cattrap/searcher"
	"context"
)

type searchAgent struct {
	searcher *searcher.Searcher
}

func newSearchAgent(cfg Config, o options) (Agent, error) {
	evaluate, err := game.ParseEvaluation(cfg.Evaluation)
	if err != nil {
		return nil, err
	}
	opts := []searcher.Option{
		searcher.WithDuration(cfg.Budget()),
		searcher.WithEvaluationFn(evaluate),
	}
	if cfg.AlphaBeta {
		opts = append(opts, searcher.WithAlphaBeta())
	}
	if cfg.DepthLimited {
		opts = append(opts, searcher.WithMaxDepth(*cfg.MaxDepth))
	}
	if cfg.IterativeDeepening {
		opts = append(opts, searcher.WithIterativeDeepening())
	}
	if o.metrics {
		opts = append(opts, searcher.WithMetrics())
	}
	return searchAgent{searcher: searcher.NewSearcher(opts...)}, nil
}

func (a searchAgent) FindMove(ctx context.Context, b *game.Board) (game.Coord, float64, metrics.SearchMetric) {
	return a.searcher.Search(ctx, b)
}

func (a searchAgent) Name() string {
	return a.searcher.Name()
}
