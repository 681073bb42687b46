package game

const (
	NoWinner = -1 // Game still in progress
	Draw     = -2 // Game over with equal stores
)

type StateHash uint64

// Evaluates the board to a score from player's perspective. Positive values
// favour player, negative values favour the opponent.
type Evaluate func(b *Board, player int) int
