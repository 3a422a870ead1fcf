package searcher

import (
	"cattrap/experiments/metrics"
	"cattrap/game"
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// Escaper in the middle of a walled-in pocket with one exit at the top
const pocket = `
##.##
 ##.##
#.C.#
 ##.##
#####
`

const trappedCenter = `
.....
 .##..
.#C#.
 .##..
.....
`

func mustParse(t *testing.T, text string) *game.Board {
	t.Helper()
	b, err := game.ParseBoard(text)
	require.NoError(t, err)
	return b
}

func newTestSession(evaluate game.Evaluate) *session {
	return newSession(context.Background(), time.Minute, evaluate, metrics.NewCollector())
}

func TestDepthOneFromTheCentre(t *testing.T) {
	b, err := game.NewBoard(5, game.Center(5))
	require.NoError(t, err)

	for _, alphaBeta := range []bool{false, true} {
		s := newTestSession(game.EvaluateProximity)
		move, value := s.search(b, 1, alphaBeta)

		require.Contains(t, game.Neighbours(b.Escaper()), move, "Move should be adjacent to the centre")

		// Every child is a depth-1 cutoff scored by proximity on the escaper's layer
		after := b.Clone()
		require.NoError(t, after.MoveEscaper(move))
		require.Equal(t, float64(25-1)*game.EvaluateProximity(after, false), value)

		// North-east is the first direction with two exits two steps away
		require.Equal(t, game.Coord{Row: 1, Col: 2}, move)
		require.Equal(t, 24.0*8, value)
		require.True(t, s.reachedBound.Load(), "Search should report hitting its bound")
	}
}

func TestTerminalScoring(t *testing.T) {
	b, err := game.NewBoard(5, game.Coord{Row: 0, Col: 2})
	require.NoError(t, err)

	for _, evaluate := range []game.Evaluate{game.EvaluateMoveCount, game.EvaluateChallenge, game.EvaluateProximity} {
		for _, alphaBeta := range []bool{false, true} {
			s := newTestSession(evaluate)
			move, value := s.search(b, 0, alphaBeta)
			require.Equal(t, b.Escaper(), move, "Cutoff at the root keeps the escaper in place")
			require.Equal(t, 25*game.EscapeScore, value, "Escape score should not depend on the evaluation")
		}
	}
}

func TestEntrapment(t *testing.T) {
	b := mustParse(t, trappedCenter)
	require.Empty(t, b.LegalDirections())

	for _, alphaBeta := range []bool{false, true} {
		s := newTestSession(game.EvaluateProximity)
		move, value := s.search(b, 4, alphaBeta)
		require.Equal(t, b.Escaper(), move, "Trapped escaper should stay put")
		require.Equal(t, 25*game.TrappedScore, value)
		require.False(t, s.reachedBound.Load(), "Root is terminal before the bound")
	}
}

// The escape score is +100 on both layers, unlike a zero-sum negamax where it
// would flip sign with the side to move. A depth-1 search therefore walks
// straight onto the border.
func TestEscapeScoreOnBothLayers(t *testing.T) {
	b, err := game.NewBoard(5, game.Coord{Row: 1, Col: 2})
	require.NoError(t, err)

	s := newTestSession(game.EvaluateProximity)
	move, value := s.minimax(b, 1)
	require.Equal(t, game.Coord{Row: 0, Col: 3}, move, "North-east is the first border tile in direction order")
	require.Equal(t, 24*game.EscapeScore, value)

	s = newTestSession(game.EvaluateProximity)
	_, value = s.minimax(b, 0)
	require.Equal(t, 25*game.EvaluateProximity(b, true), value, "Root cutoff scores the blocking side's layer")
}

func TestPruningEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := range 8 {
		b, err := game.NewRandomBoard(5, rng)
		require.NoError(t, err)
		if i%2 == 1 { // Start some searches from an odd row
			require.NoError(t, b.MoveEscaper(RandomMove(b, rng)))
		}

		for bound := 1; bound <= 4; bound++ {
			mm := newTestSession(game.EvaluateProximity)
			ab := newTestSession(game.EvaluateProximity)

			mmMove, mmValue := mm.minimax(b, bound)
			abMove, abValue := ab.alphabeta(b, bound)

			require.Equal(t, mmMove, abMove, "board %d bound %d:\n%s", i, bound, b)
			require.Equal(t, mmValue, abValue, "board %d bound %d:\n%s", i, bound, b)
			require.LessOrEqual(t, ab.metrics.Complete().Nodes, mm.metrics.Complete().Nodes)
		}
	}

	t.Run("full depth", func(t *testing.T) {
		b := mustParse(t, pocket)
		mmMove, mmValue := newTestSession(game.EvaluateProximity).minimax(b, fullDepth(b))
		abMove, abValue := newTestSession(game.EvaluateProximity).alphabeta(b, fullDepth(b))
		require.Equal(t, mmMove, abMove)
		require.Equal(t, mmValue, abValue)
	})
}

func TestIterativeDeepeningConvergence(t *testing.T) {
	b := mustParse(t, pocket)

	for _, alphaBeta := range []bool{false, true} {
		direct := newTestSession(game.EvaluateProximity)
		wantMove, wantValue := direct.search(b, fullDepth(b), alphaBeta)
		require.False(t, direct.reachedBound.Load(), "Pocket should be solved before the full bound")

		collector := metrics.NewCollector()
		collector.Start("test")
		deepening := newSession(context.Background(), time.Minute, game.EvaluateProximity, collector)
		move, value := deepening.deepen(b, alphaBeta)

		require.Equal(t, wantMove, move)
		require.Equal(t, wantValue, value)
		metric := collector.Complete()
		require.False(t, metric.TimedOut)
		require.Less(t, metric.Depth, fullDepth(b), "Deepening should stop once the tree is exhausted")
	}
}

func TestTimeoutSafety(t *testing.T) {
	b, err := game.NewRandomBoard(7, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	for _, options := range [][]Option{
		nil,
		{WithAlphaBeta()},
		{WithMaxDepth(4)},
		{WithMaxDepth(4), WithAlphaBeta()},
		{WithIterativeDeepening()},
		{WithIterativeDeepening(), WithAlphaBeta()},
	} {
		s := NewSearcher(append(options, WithDuration(0), WithMetrics())...)
		start := time.Now()
		move, value, metric := s.Search(context.Background(), b)

		require.Less(t, time.Since(start), 50*time.Millisecond, s.Name())
		require.Equal(t, game.NoCoord, move, s.Name())
		require.Equal(t, 0.0, value, s.Name())
		require.True(t, metric.TimedOut, s.Name())
		require.Equal(t, 0, metric.Depth, s.Name())
	}
}

func TestCancelledContext(t *testing.T) {
	b, err := game.NewBoard(7, game.Center(7))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	move, _ := NewSearcher(WithAlphaBeta()).FindMove(ctx, b)
	require.Equal(t, game.NoCoord, move)
}

func TestDeepeningKeepsLastCompletedDepth(t *testing.T) {
	b, err := game.NewBoard(11, game.Center(11))
	require.NoError(t, err)

	s := NewSearcher(WithIterativeDeepening(), WithAlphaBeta(), WithDuration(100*time.Millisecond), WithMetrics())
	start := time.Now()
	move, _, metric := s.Search(context.Background(), b)

	require.Less(t, time.Since(start), time.Second)
	require.Contains(t, game.Neighbours(b.Escaper()), move)
	require.GreaterOrEqual(t, metric.Depth, 1)
	require.True(t, metric.TimedOut, "An open 11x11 board cannot be solved in 100ms")
}

func TestInvalidMoveInsideSearchPanics(t *testing.T) {
	b, err := game.NewBoard(5, game.Center(5))
	require.NoError(t, err)
	s := newTestSession(game.EvaluateProximity)

	require.Panics(t, func() {
		s.maxValue(b, b.Escaper(), 1, 3)
	}, "Blocking the escaper's tile breaks the board invariant")
}

func TestSearcher(t *testing.T) {
	t.Run("names", func(t *testing.T) {
		require.Equal(t, "minimax", NewSearcher().Name())
		require.Equal(t, "alphabeta", NewSearcher(WithAlphaBeta()).Name())
		require.Equal(t, "minimax-depth3", NewSearcher(WithMaxDepth(3)).Name())
		require.Equal(t, "alphabeta-iterative", NewSearcher(WithAlphaBeta(), WithIterativeDeepening()).Name())
	})

	t.Run("iterative deepening rejects a fixed depth", func(t *testing.T) {
		require.Panics(t, func() {
			NewSearcher(WithIterativeDeepening(), WithMaxDepth(2))
		})
	})

	t.Run("depth-limited search reports its bound", func(t *testing.T) {
		b, err := game.NewBoard(5, game.Center(5))
		require.NoError(t, err)
		s := NewSearcher(WithMaxDepth(2), WithAlphaBeta(), WithMetrics(), WithDuration(time.Minute))
		move, _, metric := s.Search(context.Background(), b)
		require.Contains(t, game.Neighbours(b.Escaper()), move)
		require.Equal(t, 2, metric.Depth)
		require.False(t, metric.TimedOut)
		require.Positive(t, metric.Nodes)
		require.Equal(t, "alphabeta-depth2", metric.Strategy)
	})

	t.Run("evaluation function is pluggable", func(t *testing.T) {
		b, err := game.NewBoard(5, game.Center(5))
		require.NoError(t, err)
		s := NewSearcher(WithMaxDepth(1), WithEvaluationFn(game.EvaluateChallenge))
		move, value := s.FindMove(context.Background(), b)
		// Every child scores -1 on the escaper's layer, so the first direction wins
		require.Equal(t, game.Target(b.Escaper(), game.E), move)
		require.Equal(t, -24.0, value)
	})
}

func TestRandomMove(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b, err := game.NewBoard(5, game.Center(5))
	require.NoError(t, err)

	seen := map[game.Coord]bool{}
	for range 200 {
		move := RandomMove(b, rng)
		require.Contains(t, game.Neighbours(b.Escaper()), move)
		seen[move] = true
	}
	require.Len(t, seen, 6, "Every direction should eventually be drawn")

	trapped := mustParse(t, trappedCenter)
	move, value := NewRandom(rng).FindMove(context.Background(), trapped)
	require.Equal(t, trapped.Escaper(), move)
	require.Equal(t, 0.0, value)
}
