package searcher

import (
	"cattrap/game"
	"math"
)

// alphabeta returns the same move and value as minimax while skipping
// subtrees that cannot change the result.
func (s *session) alphabeta(b *game.Board, bound int) (game.Coord, float64) {
	return s.abMaxValue(b, game.NoCoord, math.Inf(-1), math.Inf(1), 0, bound)
}

func (s *session) abMaxValue(parent *game.Board, pending game.Coord, alpha, beta float64, depth, bound int) (game.Coord, float64) {
	if s.expired() {
		return game.NoCoord, 0
	}
	s.metrics.AddNode()

	b := parent.Clone()
	if pending != game.NoCoord {
		mustApply(b.Block(pending))
	}

	legal := b.LegalDirections()
	if s.atBound(depth, bound) || len(legal) == 0 {
		return b.Escaper(), s.cutoffValue(b, len(legal) == 0, true, depth)
	}

	from := b.Escaper()
	best := game.Target(from, legal[0])
	value := math.Inf(-1)
	for _, d := range legal {
		target := game.Target(from, d)
		v := s.abMinValue(b, target, alpha, beta, depth+1, bound)
		if s.terminated.Load() {
			return game.NoCoord, 0
		}
		if v > value {
			value, best = v, target
		}
		if value >= beta {
			s.metrics.AddPrune()
			return best, value
		}
		alpha = max(alpha, value)
	}
	return best, value
}

func (s *session) abMinValue(parent *game.Board, move game.Coord, alpha, beta float64, depth, bound int) float64 {
	if s.expired() {
		return 0
	}
	s.metrics.AddNode()

	b := parent.Clone()
	mustApply(b.MoveEscaper(move))

	if s.atBound(depth, bound) || b.EscaperOnBoundary() {
		return s.cutoffValue(b, false, false, depth)
	}

	value := math.Inf(1)
	for block := range b.EmptyCells() {
		_, v := s.abMaxValue(b, block, alpha, beta, depth+1, bound)
		if s.terminated.Load() {
			return 0
		}
		value = min(value, v)
		if value <= alpha {
			s.metrics.AddPrune()
			return value
		}
		beta = min(beta, value)
	}
	return value
}
