package searcher

import (
	"cattrap/game"
	"math"
)

// minimax searches every line up to bound plies and returns the escaper's
// best coordinate with its value.
func (s *session) minimax(b *game.Board, bound int) (game.Coord, float64) {
	return s.maxValue(b, game.NoCoord, 0, bound)
}

// maxValue is the layer where the pending block lands and the escaper picks
// its direction. pending is game.NoCoord at the root.
func (s *session) maxValue(parent *game.Board, pending game.Coord, depth, bound int) (game.Coord, float64) {
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
		v := s.minValue(b, target, depth+1, bound)
		if s.terminated.Load() {
			return game.NoCoord, 0
		}
		// Strictly greater keeps the first of equal candidates
		if v > value {
			value, best = v, target
		}
	}
	return best, value
}

// minValue is the layer where the escaper's candidate move is realised and
// every empty tile is tried as the next block.
func (s *session) minValue(parent *game.Board, move game.Coord, depth, bound int) float64 {
	if s.expired() {
		return 0
	}
	s.metrics.AddNode()

	b := parent.Clone()
	mustApply(b.MoveEscaper(move))

	// The escaper just moved, so it always has its old tile to step back to
	if s.atBound(depth, bound) || b.EscaperOnBoundary() {
		return s.cutoffValue(b, false, false, depth)
	}

	value := math.Inf(1)
	for block := range b.EmptyCells() {
		_, v := s.maxValue(b, block, depth+1, bound)
		if s.terminated.Load() {
			return 0
		}
		value = min(value, v)
	}
	return value
}
