package game

import "fmt"

// Rules describes a board variant.
type Rules struct {
	Players int `json:"players"` // Number of players sharing the board
	Pits    int `json:"pits"`    // Small pits per player
	Stones  int `json:"stones"`  // Initial stones per small pit
}

func (r Rules) Validate() error {
	if r.Players != 2 {
		return fmt.Errorf("%w: sowing is defined for 2 players, got %d", ErrInvalidRules, r.Players)
	}
	if r.Pits <= 0 {
		return fmt.Errorf("%w: need at least one pit per player, got %d", ErrInvalidRules, r.Pits)
	}
	if r.Stones <= 0 {
		return fmt.Errorf("%w: need at least one stone per pit, got %d", ErrInvalidRules, r.Stones)
	}
	return nil
}

// TotalStones is the number of stones in play for the whole game.
func (r Rules) TotalStones() int {
	return r.Players * r.Pits * r.Stones
}
