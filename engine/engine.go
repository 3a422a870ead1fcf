package engine

import (
	"cattrap/experiments/metrics"
	"context"
)

type Outcome int

const (
	Running  Outcome = iota
	Escaped          // Escaper reached the border
	Trapped          // Escaper had no legal direction left
	TimedOut         // Escaper search ran out of time, which counts as a loss
)

func (o Outcome) String() string {
	switch o {
	case Escaped:
		return "escaped"
	case Trapped:
		return "trapped"
	case TimedOut:
		return "timed out"
	default:
		return "running"
	}
}

// Over reports whether the game has ended.
func (o Outcome) Over() bool {
	return o != Running
}

type Engine interface {
	// Run plays the game till the escaper escapes, is trapped or times out
	Run(ctx context.Context) (Outcome, metrics.GameMetric, []metrics.MoveMetric, error)
}
