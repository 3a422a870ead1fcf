package engine

import (
	"cattrap/game"
	"cattrap/searcher/agent"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func intPtr(v int) *int { return &v }

// fixedBlocker replays a list of blocks.
type fixedBlocker struct {
	blocks []game.Coord
}

func (f *fixedBlocker) PlaceBlock(_ context.Context, _ *game.Board) (game.Coord, error) {
	block := f.blocks[0]
	f.blocks = f.blocks[1:]
	return block, nil
}

func newAgent(t *testing.T, cfg agent.Config) agent.Agent {
	t.Helper()
	a, err := agent.New(cfg, agent.WithMetrics(), agent.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)
	return a
}

func TestRunEndsTheGame(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	configs := []agent.Config{
		{Random: true},
		{DepthLimited: true, MaxDepth: intPtr(2), AlphaBeta: true},
	}
	for _, cfg := range configs {
		for range 5 {
			b, err := game.NewRandomBoard(5, rng)
			require.NoError(t, err)
			e := LocalEngine(b, newAgent(t, cfg), NewRandomBlocker(rng))

			outcome, gameMetric, moves, err := e.Run(context.Background())
			require.NoError(t, err)
			require.Contains(t, []Outcome{Escaped, Trapped}, outcome)
			require.Equal(t, outcome.String(), gameMetric.Outcome)
			require.Len(t, moves, gameMetric.TotalMoves)
			require.Equal(t, 5, gameMetric.Size)

			if outcome == Escaped {
				require.True(t, e.Board.EscaperOnBoundary())
			} else {
				require.Empty(t, e.Board.LegalDirections())
			}
			for i, m := range moves {
				require.Equal(t, i+1, m.Step)
				require.Equal(t, cfg.Strategy(), m.Strategy)
			}
		}
	}
}

func TestPlay(t *testing.T) {
	t.Run("escaper walks out", func(t *testing.T) {
		b, err := game.NewBoard(5, game.Coord{Row: 1, Col: 2})
		require.NoError(t, err)
		e := LocalEngine(b, newAgent(t, agent.Config{DepthLimited: true, MaxDepth: intPtr(1)}), nil)

		outcome, err := e.Play(context.Background(), game.Coord{Row: 4, Col: 4})
		require.NoError(t, err)
		require.Equal(t, Escaped, outcome)
		require.Equal(t, game.Coord{Row: 0, Col: 3}, e.Board.Escaper())

		_, err = e.Play(context.Background(), game.Coord{Row: 4, Col: 0})
		require.Error(t, err, "A finished game takes no more blocks")
	})

	t.Run("rejected block changes nothing", func(t *testing.T) {
		b, err := game.NewBoard(5, game.Center(5))
		require.NoError(t, err)
		e := LocalEngine(b, newAgent(t, agent.Config{Random: true}), nil)

		_, err = e.Play(context.Background(), b.Escaper())
		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.Empty(t, e.Moves())
		require.Equal(t, Running, e.Outcome())
	})

	t.Run("last block traps the escaper", func(t *testing.T) {
		b, err := game.ParseBoard(`
.....
 .##..
.#C..
 .##..
.....
`)
		require.NoError(t, err)
		e := LocalEngine(b, newAgent(t, agent.Config{AlphaBeta: true}), nil)

		outcome, err := e.Play(context.Background(), game.Coord{Row: 2, Col: 3})
		require.NoError(t, err)
		require.Equal(t, Trapped, outcome)
		require.Equal(t, game.Center(5), e.Board.Escaper())
		require.Len(t, e.Moves(), 1)
		require.Equal(t, "(2,2)", e.Moves()[0].Escaper)
	})

	t.Run("timeout removes the escaper", func(t *testing.T) {
		b, err := game.NewBoard(7, game.Center(7))
		require.NoError(t, err)
		budget := 0.0
		e := LocalEngine(b, newAgent(t, agent.Config{IterativeDeepening: true, TimeBudgetSeconds: &budget}), nil)

		outcome, err := e.Play(context.Background(), game.Coord{Row: 0, Col: 0})
		require.NoError(t, err)
		require.Equal(t, TimedOut, outcome)
		require.Equal(t, game.NoCoord, e.Board.Escaper())
		require.Zero(t, e.Board.CountCells(game.Escaper))
		require.True(t, e.Moves()[0].TimedOut)
	})
}

func TestBlockers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b, err := game.NewBoard(5, game.Center(5))
	require.NoError(t, err)

	for range 50 {
		c, err := NewRandomBlocker(rng).PlaceBlock(context.Background(), b)
		require.NoError(t, err)
		require.Equal(t, game.Empty, b.At(c))

		c, err = NewAdjacentBlocker(rng).PlaceBlock(context.Background(), b)
		require.NoError(t, err)
		require.Contains(t, game.Neighbours(b.Escaper()), c)
	}

	full, err := game.ParseBoard("###\n#C#\n###")
	require.NoError(t, err)
	_, err = NewAdjacentBlocker(rng).PlaceBlock(context.Background(), full)
	require.ErrorIs(t, err, ErrNoEmptyCell)
}

func TestRemoteAgent(t *testing.T) {
	server := httptest.NewServer(agent.NewRouter())
	defer server.Close()

	b, err := game.NewBoard(5, game.Center(5))
	require.NoError(t, err)

	remote := NewRemoteAgent(server.URL, agent.Config{DepthLimited: true, MaxDepth: intPtr(1)})
	move, value, metric := remote.FindMove(context.Background(), b)
	require.Equal(t, game.Coord{Row: 1, Col: 2}, move)
	require.Equal(t, 192.0, value)
	require.False(t, metric.TimedOut)
	require.Equal(t, "remote-minimax-depth1", remote.Name())

	t.Run("server errors count as a timeout", func(t *testing.T) {
		bad := NewRemoteAgent(server.URL, agent.Config{IterativeDeepening: true})
		move, _, metric := bad.FindMove(context.Background(), b)
		require.Equal(t, game.NoCoord, move)
		require.True(t, metric.TimedOut)
	})

	t.Run("plays a whole game", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		board, err := game.NewRandomBoard(5, rng)
		require.NoError(t, err)
		e := LocalEngine(board, remote, NewRandomBlocker(rng))
		outcome, _, _, err := e.Run(context.Background())
		require.NoError(t, err)
		require.True(t, outcome.Over())
	})
}
