package experiments

import (
	"cattrap/engine"
	"cattrap/experiments/metrics"
	"cattrap/game"
	"cattrap/searcher/agent"
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	NumGames   = 30 // Per match up
	BoardSize  = 7
	TimeBudget = 100 * time.Millisecond
)

// Settings control the scale of an experiment.
type Settings struct {
	Dir      string // Root directory of the CSV output
	Games    int    // Per match up
	Size     int
	Parallel int // Games played at once
}

func DefaultSettings() Settings {
	return Settings{
		Dir:      "experiments",
		Games:    NumGames,
		Size:     BoardSize,
		Parallel: runtime.NumCPU(),
	}
}

// MatchUp pairs an escaper configuration with a blocker.
type MatchUp struct {
	ID      int
	Escaper agent.Config
	Blocker string
}

// Names accepted by newBlocker
const (
	RandomBlocker   = "random"
	AdjacentBlocker = "adjacent"
)

func budget(seconds float64) *float64 {
	return &seconds
}

func depth(d int) *int {
	return &d
}

// RunStrategyExperiment plays every search strategy against both blockers.
func RunStrategyExperiment(ctx context.Context, s Settings) error {
	seconds := TimeBudget.Seconds()
	escapers := []agent.Config{
		{Random: true},
		{DepthLimited: true, MaxDepth: depth(2)},
		{DepthLimited: true, MaxDepth: depth(2), AlphaBeta: true},
		{IterativeDeepening: true, TimeBudgetSeconds: budget(seconds)},
		{IterativeDeepening: true, TimeBudgetSeconds: budget(seconds), AlphaBeta: true},
	}
	matchUps := []MatchUp{}
	for _, blocker := range []string{RandomBlocker, AdjacentBlocker} {
		for _, escaper := range escapers {
			matchUps = append(matchUps, MatchUp{ID: len(matchUps) + 1, Escaper: escaper, Blocker: blocker})
		}
	}
	return runExperiment(ctx, "strategies", s, matchUps)
}

// RunEvaluationExperiment compares the evaluation functions under the same
// iterative alpha-beta search.
func RunEvaluationExperiment(ctx context.Context, s Settings) error {
	matchUps := []MatchUp{}
	for _, evaluation := range []string{game.MoveCountEvaluation, game.ChallengeEvaluation, game.ProximityEvaluation} {
		matchUps = append(matchUps, MatchUp{
			ID: len(matchUps) + 1,
			Escaper: agent.Config{
				IterativeDeepening: true,
				TimeBudgetSeconds:  budget(TimeBudget.Seconds()),
				AlphaBeta:          true,
				Evaluation:         evaluation,
			},
			Blocker: AdjacentBlocker,
		})
	}
	return runExperiment(ctx, "evaluations", s, matchUps)
}

func runExperiment(ctx context.Context, name string, s Settings, matchUps []MatchUp) error {
	var mu sync.Mutex
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Parallel, 1))
	for _, matchUp := range matchUps {
		if err := matchUp.Escaper.Validate(); err != nil {
			return err
		}
		for i := 0; i < s.Games; i++ {
			g.Go(func() error {
				gameRecord, moves, err := runGame(ctx, s.Size, matchUp)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", matchUp.ID, i+1, err)
				}
				log.Debug().Msgf("matchup %d game %d: escaper %s", matchUp.ID, i+1, gameRecord.Outcome)

				mu.Lock()
				defer mu.Unlock()
				gameRecords = append(gameRecords, gameRecord)
				moveRecords = append(moveRecords, moves...)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msgf("completed %s experiment", name)
	for _, line := range summarize(matchUps, gameRecords) {
		log.Info().Msg(line)
	}

	writer, err := metrics.NewWriter(s.Dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(agentConfigs(matchUps)); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return nil
}

// runGame plays a single game on a fresh random board.
func runGame(ctx context.Context, size int, matchUp MatchUp) (metrics.GameRecord, []metrics.MoveRecord, error) {
	rng := agent.NewRand()
	board, err := game.NewRandomBoard(size, rng)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	escaper, err := agent.New(matchUp.Escaper, agent.WithRand(rng), agent.WithMetrics())
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	blocker, err := newBlocker(matchUp.Blocker, rng)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	e := engine.LocalEngine(board, escaper, blocker)
	_, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	id := e.ID.String()
	moves := lo.Map(moveMetrics, func(m metrics.MoveMetric, _ int) metrics.MoveRecord {
		return metrics.MoveRecord{Game: id, MoveMetric: m}
	})
	return metrics.GameRecord{ID: id, Agent: matchUp.ID, Blocker: matchUp.Blocker, GameMetric: gameMetric}, moves, nil
}

func newBlocker(name string, rng *rand.Rand) (engine.Blocker, error) {
	switch name {
	case RandomBlocker:
		return engine.NewRandomBlocker(rng), nil
	case AdjacentBlocker:
		return engine.NewAdjacentBlocker(rng), nil
	default:
		return nil, fmt.Errorf("unknown blocker %q", name)
	}
}

func agentConfigs(matchUps []MatchUp) []metrics.AgentConfig {
	return lo.Map(matchUps, func(m MatchUp, _ int) metrics.AgentConfig {
		evaluation := m.Escaper.Evaluation
		if evaluation == "" && !m.Escaper.Random {
			evaluation = game.DefaultEvaluation
		}
		return metrics.AgentConfig{
			ID:         m.ID,
			Strategy:   m.Escaper.Strategy() + "-vs-" + m.Blocker,
			Evaluation: evaluation,
			Budget:     m.Escaper.Budget(),
		}
	})
}

// summarize reports the escape rate of every match up.
func summarize(matchUps []MatchUp, records []metrics.GameRecord) []string {
	byAgent := lo.GroupBy(records, func(r metrics.GameRecord) int { return r.Agent })
	return lo.Map(matchUps, func(m MatchUp, _ int) string {
		games := byAgent[m.ID]
		escaped := lo.CountBy(games, func(r metrics.GameRecord) bool {
			return r.Outcome == engine.Escaped.String()
		})
		return fmt.Sprintf("matchup %d %s vs %s: escaped %d of %d", m.ID, m.Escaper.Strategy(), m.Blocker, escaped, len(games))
	})
}
