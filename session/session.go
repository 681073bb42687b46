package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"mancala/game"
	"mancala/player"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

const (
	HumanPlayer    = 0
	ComputerPlayer = 1
)

var (
	ErrUnknownSession = errors.New("unknown session")
	ErrGameOver       = errors.New("game is over")
)

// GameData is the view of a session handed to the presentation layer.
// Player indexes and the difficulty are encoded as strings ("0", "1"), a
// finished game without a leader has winner "draw".
type GameData struct {
	SessionID  uuid.UUID         `json:"session_id"`
	Difficulty string            `json:"difficulty"`
	Turn       string            `json:"turn"`
	Winner     *string           `json:"winner"`
	Players    map[int]game.Side `json:"players"`
}

// Session is one game between the human and a computer opponent. At most one
// mutation runs at a time.
type Session struct {
	mu         sync.Mutex
	id         uuid.UUID
	board      *game.Board
	turn       int
	winner     int
	difficulty player.Difficulty
	human      *player.Human
	players    []player.Strategy // Indexed by player
}

func newSession(id uuid.UUID, rules game.Rules, difficulty player.Difficulty, computer player.Strategy) (*Session, error) {
	board, err := game.NewBoard(rules)
	if err != nil {
		return nil, err
	}
	human := player.NewHuman()
	return &Session{
		id:         id,
		board:      board,
		turn:       HumanPlayer,
		winner:     game.NoWinner,
		difficulty: difficulty,
		human:      human,
		players:    []player.Strategy{HumanPlayer: human, ComputerPlayer: computer},
	}, nil
}

// data must be called with the session locked.
func (s *Session) data() GameData {
	snapshot := s.board.Snapshot()
	players := make(map[int]game.Side, len(snapshot.Players))
	for i, side := range snapshot.Players {
		players[i] = side
	}

	var winner *string
	switch s.winner {
	case game.NoWinner:
	case game.Draw:
		draw := "draw"
		winner = &draw
	default:
		index := strconv.Itoa(s.winner)
		winner = &index
	}

	return GameData{
		SessionID:  s.id,
		Difficulty: strconv.Itoa(int(s.difficulty)),
		Turn:       strconv.Itoa(s.turn),
		Winner:     winner,
		Players:    players,
	}
}

// play applies the human's pit and then the computer's replies for as long as
// it keeps the turn. A computer turn left over from an earlier failed call is
// played first.
func (s *Session) play(ctx context.Context, pit int) error {
	if err := s.resume(ctx); err != nil {
		return err
	}
	if s.winner != game.NoWinner {
		return ErrGameOver
	}
	if !slices.Contains(s.board.ValidPitIndexes(HumanPlayer), pit) {
		return fmt.Errorf("%w: pit %d cannot be played", game.ErrIllegalMove, pit)
	}

	s.human.Select(pit)
	if err := s.step(ctx); err != nil {
		return err
	}
	return s.resume(ctx)
}

// resume plays the computer's moves until it is the human's turn or the game
// is over.
func (s *Session) resume(ctx context.Context) error {
	for s.turn == ComputerPlayer && s.winner == game.NoWinner {
		if err := s.step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// step lets the player to move choose a pit and plays it.
func (s *Session) step(ctx context.Context) error {
	current := s.turn
	pit, err := s.players[current].ChoosePit(ctx, s.board, current)
	if err != nil {
		return fmt.Errorf("player %d failed to choose a pit: %w", current, err)
	}
	return s.apply(current, pit)
}

func (s *Session) apply(current, pit int) error {
	outcome, err := s.board.Move(current, pit)
	if err != nil {
		return err
	}
	if err := s.board.Verify(); err != nil {
		return err
	}
	if outcome != game.LandedInOwnStore {
		s.turn = s.board.Opponent(current)
	}
	s.winner = s.board.Winner()
	return nil
}

func (s *Session) reset(difficulty player.Difficulty, computer player.Strategy) {
	s.board.Reset()
	s.turn = HumanPlayer
	s.winner = game.NoWinner
	s.difficulty = difficulty
	s.players[ComputerPlayer] = computer
}
