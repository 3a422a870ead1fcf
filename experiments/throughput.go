package experiments

import (
	"cattrap/experiments/metrics"
	"cattrap/game"
	"cattrap/searcher/agent"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// RunThroughputExperiment times single searches of every strategy on the same
// random boards, so node counts and pruning can be compared position by
// position.
func RunThroughputExperiment(ctx context.Context, s Settings) error {
	const Boards = 20
	configs := []MatchUp{
		{ID: 1, Escaper: agent.Config{DepthLimited: true, MaxDepth: depth(2)}},
		{ID: 2, Escaper: agent.Config{DepthLimited: true, MaxDepth: depth(2), AlphaBeta: true}},
		{ID: 3, Escaper: agent.Config{DepthLimited: true, MaxDepth: depth(3), AlphaBeta: true}},
		{ID: 4, Escaper: agent.Config{IterativeDeepening: true, TimeBudgetSeconds: budget(TimeBudget.Seconds())}},
		{ID: 5, Escaper: agent.Config{IterativeDeepening: true, TimeBudgetSeconds: budget(TimeBudget.Seconds()), AlphaBeta: true}},
	}

	rng := agent.NewRand()
	boards := make([]*game.Board, Boards)
	for i := range boards {
		b, err := game.NewRandomBoard(s.Size, rng)
		if err != nil {
			return err
		}
		boards[i] = b
	}

	log.Info().Msg("starting throughput experiment...")
	records := []metrics.SearchRecord{}
	for _, config := range configs {
		a, err := agent.New(config.Escaper, agent.WithMetrics())
		if err != nil {
			return err
		}
		for _, b := range boards {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, _, searchMetric := a.FindMove(ctx, b)
			records = append(records, metrics.SearchRecord{
				Agent:        config.ID,
				Board:        uint64(b.Hash()),
				SearchMetric: searchMetric,
			})
		}
		log.Info().Msg(throughput(config, records))
	}
	log.Info().Msg("completed throughput experiment")

	writer, err := metrics.NewWriter(s.Dir, "throughput")
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(agentConfigs(configs)); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteSearchRecords(records); err != nil {
		return fmt.Errorf("failed to write search records: %w", err)
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return nil
}

func throughput(config MatchUp, records []metrics.SearchRecord) string {
	own := lo.Filter(records, func(r metrics.SearchRecord, _ int) bool { return r.Agent == config.ID })
	nodes := lo.SumBy(own, func(r metrics.SearchRecord) int { return r.Nodes })
	elapsed := lo.SumBy(own, func(r metrics.SearchRecord) time.Duration { return r.Duration })
	rate := 0.0
	if elapsed > 0 {
		rate = float64(nodes) / elapsed.Seconds()
	}
	return fmt.Sprintf("%s: %d nodes in %s (%.0f nodes/s)", config.Escaper.Strategy(), nodes, elapsed, rate)
}
