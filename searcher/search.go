package searcher

import (
	"cattrap/experiments/metrics"
	"cattrap/game"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(s *Searcher)

// Searcher runs minimax or alpha-beta, either to a fixed depth bound or by
// iterative deepening, against a wall-clock budget. A Searcher runs one
// search at a time.
type Searcher struct {
	alphaBeta bool
	iterative bool
	maxDepth  int
	duration  time.Duration
	evaluate  game.Evaluate
	metrics   metrics.Collector
}

func WithAlphaBeta() Option {
	return func(s *Searcher) {
		s.alphaBeta = true
	}
}

// WithMaxDepth bounds the search to depth plies.
func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth >= 0 {
			s.maxDepth = depth
		}
	}
}

func WithIterativeDeepening() Option {
	return func(s *Searcher) {
		s.iterative = true
	}
}

// WithDuration sets the time budget of every search. A zero budget times out
// straight away.
func WithDuration(duration time.Duration) Option {
	return func(s *Searcher) {
		if duration >= 0 {
			s.duration = duration
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		maxDepth: Unbounded,
		duration: DefaultDuration,
		evaluate: game.EvaluateProximity,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.iterative && s.maxDepth != Unbounded {
		panic("iterative deepening chooses its own depth bounds")
	}
	return s
}

// Name describes the search for logs and experiment records.
func (s *Searcher) Name() string {
	name := "minimax"
	if s.alphaBeta {
		name = "alphabeta"
	}
	switch {
	case s.iterative:
		return name + "-iterative"
	case s.maxDepth != Unbounded:
		return fmt.Sprintf("%s-depth%d", name, s.maxDepth)
	default:
		return name
	}
}

func (s *Searcher) FindMove(ctx context.Context, b *game.Board) (game.Coord, float64) {
	move, value, _ := s.Search(ctx, b)
	return move, value
}

// Search runs one search on a fresh session and reports its metrics.
func (s *Searcher) Search(ctx context.Context, b *game.Board) (game.Coord, float64, metrics.SearchMetric) {
	s.metrics.Start(s.Name())
	sess := newSession(ctx, s.duration, s.evaluate, s.metrics)
	start := time.Now()

	var move game.Coord
	var value float64
	if s.iterative {
		move, value = sess.deepen(b, s.alphaBeta)
	} else {
		bound := s.maxDepth
		if bound == Unbounded {
			bound = fullDepth(b)
		}
		move, value = sess.search(b, bound, s.alphaBeta)
		if !sess.terminated.Load() {
			s.metrics.CompleteDepth(bound)
		}
	}

	if move == game.NoCoord {
		log.Warn().Msgf("%s ran out of time after %s", s.Name(), time.Since(start))
	} else {
		log.Debug().Msgf("%s chose %v with value %.1f in %s", s.Name(), move, value, time.Since(start))
	}
	return move, value, s.metrics.Complete()
}
