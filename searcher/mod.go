package searcher

import (
	"context"
	"errors"

	"mancala/game"
)

// Search parameters

const DefaultDepth = 2 // The agent's move plus the opponent's best reply

const Infinity = 1 << 30 // Bound larger than any store difference

var ErrNoLegalMoves = errors.New("no legal moves")

type Searcher interface {
	BestMove(ctx context.Context, b *game.Board, player int) (int, error)
}
