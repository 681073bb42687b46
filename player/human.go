package player

import (
	"context"

	"mancala/game"
)

// Human plays the pit selected by the presentation layer.
type Human struct {
	selected int
	ok       bool
}

func NewHuman() *Human {
	return &Human{}
}

func (h *Human) Select(pit int) {
	h.selected = pit
	h.ok = true
}

// ChoosePit consumes the current selection. Legality is checked by the board
// when the pit is played.
func (h *Human) ChoosePit(ctx context.Context, b *game.Board, player int) (int, error) {
	if !h.ok {
		return -1, ErrNoSelection
	}
	h.ok = false
	return h.selected, nil
}
