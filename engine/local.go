package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mancala/experiments/metrics"
	"mancala/game"
	"mancala/player"

	"github.com/rs/zerolog/log"
)

var ErrMaxMoves = errors.New("move limit reached without a winner")

type Engine struct {
	Board    *game.Board
	Players  []player.Strategy
	Starting int
}

// LocalEngine sets up a game between the given strategies, indexed by
// player, on a fresh board.
func LocalEngine(players []player.Strategy, rules game.Rules, starting int) (*Engine, error) {
	if len(players) != rules.Players {
		return nil, fmt.Errorf("need %d players, got %d", rules.Players, len(players))
	}
	board, err := game.NewBoard(rules)
	if err != nil {
		return nil, err
	}
	if err := board.CheckPlayer(starting); err != nil {
		return nil, fmt.Errorf("starting player: %w", err)
	}

	return &Engine{
		Board:    board,
		Players:  players,
		Starting: starting,
	}, nil
}

// Run executes the entire game loop until a winner is found. A player who
// lands in their own store moves again.
func (e *Engine) Run(ctx context.Context) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Starting,
		Winner:         game.NoWinner,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %d is starting", e.Starting)

	current := e.Starting
	winner := game.NoWinner
	step := 0
	for ; winner == game.NoWinner && step < MaxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return game.NoWinner, gameMetric, moveMetrics, err
		}
		pit, err := e.Players[current].ChoosePit(ctx, e.Board, current)
		if err != nil {
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("player %d failed to choose a pit: %w", current, err)
		}

		outcome, err := e.Board.Move(current, pit)
		if err != nil {
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("player %d: %w", current, err)
		}
		if err := e.Board.Verify(); err != nil {
			return game.NoWinner, gameMetric, moveMetrics, err
		}

		moveMetric := metrics.MoveMetric{
			Step:    step + 1,
			Player:  current,
			Pit:     pit,
			Outcome: outcome.String(),
			Hash:    uint64(e.Board.Hash()),
		}
		if reporter, ok := e.Players[current].(player.Reporter); ok {
			moveMetric.SearchMetric = reporter.Metrics()
		}
		moveMetrics = append(moveMetrics, moveMetric)

		if outcome != game.LandedInOwnStore {
			current = e.Board.Opponent(current)
		}
		winner = e.Board.Winner()
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.Winner = winner
	gameMetric.Stores = []int{e.Board.Store(0), e.Board.Store(1)}

	if winner == game.NoWinner {
		log.Warn().Msgf("stopped after %d moves (no winner yet)", step)
		return winner, gameMetric, moveMetrics, ErrMaxMoves
	}
	log.Debug().Msgf("game over after %d moves, winner: %d", step, winner)
	return winner, gameMetric, moveMetrics, nil
}
