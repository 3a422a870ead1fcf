package game

import (
	"fmt"
	"slices"
)

// EvaluateMoveCount scores a board by the escaper's number of legal directions,
// one less on the escaper's own layer.
func EvaluateMoveCount(b *Board, maximizing bool) float64 {
	moves := len(b.LegalDirections())
	if maximizing {
		return float64(moves)
	}
	return float64(moves - 1)
}

// EvaluateChallenge is a constant placeholder to experiment with new heuristics.
func EvaluateChallenge(b *Board, maximizing bool) float64 {
	if maximizing {
		return 1
	}
	return -1
}

// Distance assumed for missing rays, large enough to never be the closest exit
const farDistance = 100

// Multiplier applied to a ray that runs into a non-empty tile before leaving the grid
const obstructionPenalty = 5

// EvaluateProximity rewards short, unobstructed routes to the border. Each
// legal direction is followed in a straight line until it leaves the grid or
// hits a tile; obstructed rays count five times their length. The maximizing
// layer scores against the closest route, the other layer against the second
// closest.
func EvaluateProximity(b *Board, maximizing bool) float64 {
	distances := []int{farDistance, farDistance}
	for _, d := range b.LegalDirections() {
		distances = append(distances, rayDistance(b, d))
	}
	slices.Sort(distances)

	closest := distances[0]
	if !maximizing {
		closest = distances[1]
	}
	return float64(2*b.size - closest)
}

func rayDistance(b *Board, d Direction) int {
	dist := 0
	c := b.escaper
	for {
		dist++
		c = Target(c, d)
		if !b.InBounds(c) {
			return dist
		}
		if b.At(c) != Empty {
			return dist * obstructionPenalty
		}
	}
}

// Names accepted by ParseEvaluation
const (
	MoveCountEvaluation = "moves"
	ChallengeEvaluation = "challenge"
	ProximityEvaluation = "proximity"
)

// DefaultEvaluation is used when no evaluation is configured.
const DefaultEvaluation = ProximityEvaluation

var evaluations = map[string]Evaluate{
	MoveCountEvaluation: EvaluateMoveCount,
	ChallengeEvaluation: EvaluateChallenge,
	ProximityEvaluation: EvaluateProximity,
}

// ParseEvaluation returns the evaluation function registered under name.
// An empty name selects the proximity evaluation.
func ParseEvaluation(name string) (Evaluate, error) {
	if name == "" {
		name = DefaultEvaluation
	}
	evaluate, ok := evaluations[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation %q", name)
	}
	return evaluate, nil
}
