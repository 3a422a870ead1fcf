package searcher

import (
	"cattrap/experiments/metrics"
	"cattrap/game"
	"context"
	"sync/atomic"
	"time"
)

// session is the state shared by every frame of one top-level search.
type session struct {
	ctx          context.Context
	deadline     time.Time
	evaluate     game.Evaluate
	metrics      metrics.Collector
	terminated   atomic.Bool
	reachedBound atomic.Bool
}

func newSession(ctx context.Context, budget time.Duration, evaluate game.Evaluate, collector metrics.Collector) *session {
	return &session{
		ctx:      ctx,
		deadline: time.Now().Add(budget),
		evaluate: evaluate,
		metrics:  collector,
	}
}

// expired polls the clock and the caller's context. Once it reports true it
// keeps doing so for the rest of the session.
func (s *session) expired() bool {
	if s.terminated.Load() {
		return true
	}
	if time.Until(s.deadline) < SafetyMargin || s.ctx.Err() != nil {
		s.terminated.Store(true)
		s.metrics.SetTimedOut()
		return true
	}
	return false
}

// cutoffValue scores a node where the search stops. Shallow results weigh
// more than deep ones.
func (s *session) cutoffValue(b *game.Board, trapped, maximizing bool, depth int) float64 {
	weight := float64(b.Size()*b.Size() - depth)
	switch {
	case b.EscaperOnBoundary():
		return weight * game.EscapeScore
	case trapped:
		return weight * game.TrappedScore
	default:
		return weight * s.evaluate(b, maximizing)
	}
}

func (s *session) atBound(depth, bound int) bool {
	if depth >= bound {
		s.reachedBound.Store(true)
		return true
	}
	return false
}

// mustApply panics on a rejected move: the search only proposes empty
// tiles, so an error means the board is corrupt.
func mustApply(err error) {
	if err != nil {
		panic(err)
	}
}
