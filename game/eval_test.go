package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateMoveCount(t *testing.T) {
	b, err := NewBoard(5, Coord{Row: 2, Col: 1})
	require.NoError(t, err)
	require.Equal(t, 6.0, EvaluateMoveCount(b, true))
	require.Equal(t, 5.0, EvaluateMoveCount(b, false))

	trapped, err := ParseBoard(trappedCenter)
	require.NoError(t, err)
	require.Equal(t, 0.0, EvaluateMoveCount(trapped, true))
	require.Equal(t, -1.0, EvaluateMoveCount(trapped, false))
}

func TestEvaluateChallenge(t *testing.T) {
	b, err := NewBoard(5, Center(5))
	require.NoError(t, err)
	require.Equal(t, 1.0, EvaluateChallenge(b, true))
	require.Equal(t, -1.0, EvaluateChallenge(b, false))
}

func TestEvaluateProximity(t *testing.T) {
	t.Run("open centre is three steps from every side", func(t *testing.T) {
		b, err := NewBoard(5, Center(5))
		require.NoError(t, err)
		require.Equal(t, 7.0, EvaluateProximity(b, true))
		require.Equal(t, 7.0, EvaluateProximity(b, false))
	})

	t.Run("layers score the closest and second closest routes", func(t *testing.T) {
		// West exits in 2 steps, the next best route takes 3
		b, err := NewBoard(5, Coord{Row: 2, Col: 1})
		require.NoError(t, err)
		require.Equal(t, 8.0, EvaluateProximity(b, true))
		require.Equal(t, 7.0, EvaluateProximity(b, false))
	})

	t.Run("obstructed rays are penalised", func(t *testing.T) {
		b, err := ParseBoard(`
.....
 .....
..C.#
 .....
.....
`)
		require.NoError(t, err)
		require.Equal(t, 10, rayDistance(b, E))
		require.Equal(t, 3, rayDistance(b, W))
	})

	t.Run("missing routes fall back to the far distance", func(t *testing.T) {
		trapped, err := ParseBoard(trappedCenter)
		require.NoError(t, err)
		require.Equal(t, float64(2*5-farDistance), EvaluateProximity(trapped, true))
		require.Equal(t, float64(2*5-farDistance), EvaluateProximity(trapped, false))
	})

	t.Run("a single route leaves the second closest at the far distance", func(t *testing.T) {
		b, err := ParseBoard(`
.....
 .##..
.#C..
 .##..
.....
`)
		require.NoError(t, err)
		require.Equal(t, []Direction{E}, b.LegalDirections())
		require.Equal(t, 7.0, EvaluateProximity(b, true))
		require.Equal(t, float64(2*5-farDistance), EvaluateProximity(b, false))
	})
}

func TestParseEvaluation(t *testing.T) {
	b, err := NewBoard(5, Coord{Row: 2, Col: 1})
	require.NoError(t, err)

	for name, want := range map[string]float64{
		"":                  8,
		ProximityEvaluation: 8,
		MoveCountEvaluation: 6,
		ChallengeEvaluation: 1,
	} {
		evaluate, err := ParseEvaluation(name)
		require.NoError(t, err)
		require.Equal(t, want, evaluate(b, true), "evaluation %q", name)
	}

	_, err = ParseEvaluation("mobility")
	require.Error(t, err)
}
