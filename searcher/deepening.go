package searcher

import (
	"cattrap/game"
	"time"

	"github.com/rs/zerolog/log"
)

// deepen repeats the search with bounds 1, 2, 3, ... and keeps the move of
// the deepest search that finished before the deadline. It stops early once
// a search no longer reaches its bound: the whole tree fit, so deeper
// searches would return the same move.
func (s *session) deepen(b *game.Board, alphaBeta bool) (game.Coord, float64) {
	start := time.Now()
	best, value := game.NoCoord, 0.0
	completed := 0

	for bound := 1; bound <= fullDepth(b); bound++ {
		s.reachedBound.Store(false)
		move, v := s.search(b, bound, alphaBeta)
		if s.terminated.Load() {
			log.Debug().Msgf("depth %d cut off by the deadline", bound)
			break
		}
		best, value, completed = move, v, bound
		s.metrics.CompleteDepth(bound)
		log.Debug().Msgf("done with a tree of depth %d in %s: move %v value %.1f", bound, time.Since(start), move, v)

		if !s.reachedBound.Load() {
			break
		}
	}

	log.Debug().Msgf("depth reached: %d", completed)
	return best, value
}

func (s *session) search(b *game.Board, bound int, alphaBeta bool) (game.Coord, float64) {
	if alphaBeta {
		return s.alphabeta(b, bound)
	}
	return s.minimax(b, bound)
}
