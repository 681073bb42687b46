package game

import "fmt"

// Move is a pit selection by a player.
type Move struct {
	Player int
	Pit    int
}

func (m Move) String() string {
	return fmt.Sprintf("player %d pit %d", m.Player, m.Pit)
}

// Play applies m to the board.
func (b *Board) Play(m Move) (Outcome, error) {
	return b.Move(m.Player, m.Pit)
}
