package player

import (
	"context"
	"fmt"

	"mancala/game"
	"mancala/searcher"

	"golang.org/x/exp/rand"
)

// Random picks uniformly among the legal pits.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) ChoosePit(ctx context.Context, b *game.Board, player int) (int, error) {
	if err := b.CheckPlayer(player); err != nil {
		return -1, err
	}
	pits := b.ValidPitIndexes(player)
	if len(pits) == 0 {
		return -1, fmt.Errorf("player %d: %w", player, searcher.ErrNoLegalMoves)
	}
	return pits[r.rng.Intn(len(pits))], nil
}
