package game

// EvaluateStores scores the board as the difference between the player's
// store and the opponent's store.
func EvaluateStores(b *Board, player int) int {
	return b.Store(player) - b.Store(b.Opponent(player))
}

// EvaluateMaterial also counts the stones still sitting on each player's side,
// which is what each side would collect if the game ended now.
func EvaluateMaterial(b *Board, player int) int {
	opponent := b.Opponent(player)
	return b.Store(player) + sum(b.sides[player].Pits) - b.Store(opponent) - sum(b.sides[opponent].Pits)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
