package engine

import (
	"cattrap/experiments/metrics"
	"cattrap/game"
	"cattrap/searcher/agent"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Local runs a game between a blocker and an escaper agent in process.
type Local struct {
	ID      uuid.UUID
	Board   *game.Board
	Escaper agent.Agent
	Blocker Blocker // Unused when the caller drives Play itself

	outcome Outcome
	step    int
	moves   []metrics.MoveMetric
}

func LocalEngine(board *game.Board, escaper agent.Agent, blocker Blocker) *Local {
	if board.Escaper() == game.NoCoord {
		panic("game needs an escaper on the board")
	}
	e := &Local{
		ID:      uuid.New(),
		Board:   board,
		Escaper: escaper,
		Blocker: blocker,
	}
	if board.EscaperOnBoundary() {
		e.outcome = Escaped
	}
	return e
}

func (e *Local) Outcome() Outcome {
	return e.outcome
}

func (e *Local) Moves() []metrics.MoveMetric {
	return e.moves
}

// Play runs one round: block goes on the board, then the escaper answers.
// A rejected block leaves the board untouched.
func (e *Local) Play(ctx context.Context, block game.Coord) (Outcome, error) {
	if e.outcome.Over() {
		return e.outcome, fmt.Errorf("game is over: escaper %s", e.outcome)
	}
	if err := e.Board.Block(block); err != nil {
		return e.outcome, err
	}
	e.step++

	hash := e.Board.Hash()
	blocks := e.Board.CountCells(game.Blocked)
	from := e.Board.Escaper()
	move, value, searchMetric := e.Escaper.FindMove(ctx, e.Board.Clone())
	log.Debug().Msgf("[%s] step %d: block %v, %s moved %v -> %v in %s", e.ID, e.step, block, e.Escaper.Name(), from, move, searchMetric.Duration)

	switch move {
	case game.NoCoord:
		e.Board.RemoveEscaper()
		e.outcome = TimedOut
	case from:
		e.outcome = Trapped
	default:
		if err := e.Board.MoveEscaper(move); err != nil {
			return e.outcome, fmt.Errorf("%s proposed %v: %w", e.Escaper.Name(), move, err)
		}
		if e.Board.EscaperOnBoundary() {
			e.outcome = Escaped
		}
	}

	e.moves = append(e.moves, metrics.MoveMetric{
		Step:         e.step,
		Block:        block.String(),
		Escaper:      move.String(),
		Blocks:       blocks,
		Board:        uint64(hash),
		Value:        value,
		SearchMetric: searchMetric,
	})
	return e.outcome, nil
}

// Run executes the entire game loop with the engine's blocker.
func (e *Local) Run(ctx context.Context) (Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	if e.Blocker == nil {
		panic("Run needs a blocker")
	}
	gameMetric := metrics.GameMetric{
		Size:      e.Board.Size(),
		StartTime: time.Now(),
	}
	log.Debug().Msgf("[%s] starting %s against %T", e.ID, e.Escaper.Name(), e.Blocker)

	for !e.outcome.Over() {
		if err := ctx.Err(); err != nil {
			return e.outcome, gameMetric, e.moves, err
		}
		block, err := e.Blocker.PlaceBlock(ctx, e.Board)
		if err != nil {
			return e.outcome, gameMetric, e.moves, err
		}
		if _, err := e.Play(ctx, block); err != nil {
			return e.outcome, gameMetric, e.moves, err
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Outcome = e.outcome.String()
	gameMetric.TotalMoves = e.step
	log.Debug().Msgf("[%s] escaper %s after %d moves", e.ID, e.outcome, e.step)
	return e.outcome, gameMetric, e.moves, nil
}
