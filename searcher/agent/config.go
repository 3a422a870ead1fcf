package agent

import (
	"cattrap/game"
	"errors"
	"fmt"
	"time"
)

var ErrMalformedConfig = errors.New("malformed agent config")

// Budget of searches that are not given one
const DefaultTimeBudget = 5 * time.Second

// Config selects one strategy: random, plain search, depth-limited search or
// iterative deepening. AlphaBeta switches any of the search strategies to
// alpha-beta pruning.
type Config struct {
	Random             bool     `json:"random" mapstructure:"random"`
	AlphaBeta          bool     `json:"alpha_beta" mapstructure:"alpha_beta"`
	DepthLimited       bool     `json:"depth_limited" mapstructure:"depth_limited"`
	MaxDepth           *int     `json:"max_depth,omitempty" mapstructure:"max_depth"`
	IterativeDeepening bool     `json:"iterative_deepening" mapstructure:"iterative_deepening"`
	TimeBudgetSeconds  *float64 `json:"time_budget,omitempty" mapstructure:"time_budget"`
	Evaluation         string   `json:"evaluation,omitempty" mapstructure:"evaluation"`
}

func (c Config) Validate() error {
	active := 0
	for _, on := range []bool{c.Random, c.DepthLimited, c.IterativeDeepening} {
		if on {
			active++
		}
	}
	switch {
	case active > 1:
		return fmt.Errorf("%w: random, depth-limited and iterative deepening are exclusive", ErrMalformedConfig)
	case c.Random && c.AlphaBeta:
		return fmt.Errorf("%w: alpha-beta needs a search strategy", ErrMalformedConfig)
	case c.DepthLimited && c.MaxDepth == nil:
		return fmt.Errorf("%w: depth-limited search without a max depth", ErrMalformedConfig)
	case c.MaxDepth != nil && *c.MaxDepth < 0:
		return fmt.Errorf("%w: negative max depth %d", ErrMalformedConfig, *c.MaxDepth)
	case c.IterativeDeepening && c.TimeBudgetSeconds == nil:
		return fmt.Errorf("%w: iterative deepening without a time budget", ErrMalformedConfig)
	case c.TimeBudgetSeconds != nil && *c.TimeBudgetSeconds < 0:
		return fmt.Errorf("%w: negative time budget %v", ErrMalformedConfig, *c.TimeBudgetSeconds)
	}
	if _, err := game.ParseEvaluation(c.Evaluation); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}
	return nil
}

// Budget is the configured time budget, or DefaultTimeBudget.
func (c Config) Budget() time.Duration {
	if c.TimeBudgetSeconds == nil {
		return DefaultTimeBudget
	}
	return time.Duration(*c.TimeBudgetSeconds * float64(time.Second))
}

// Strategy names the strategy the way experiment records label it.
func (c Config) Strategy() string {
	name := "minimax"
	if c.AlphaBeta {
		name = "alphabeta"
	}
	switch {
	case c.Random:
		return "random"
	case c.DepthLimited:
		return fmt.Sprintf("%s-depth%d", name, *c.MaxDepth)
	case c.IterativeDeepening:
		return name + "-iterative"
	default:
		return name
	}
}
