package game

// Outcome is the result of applying a move to the board.
type Outcome int

const (
	Valid            Outcome = iota // Turn passes to the opponent
	LandedInOwnStore                // Mover takes another turn
	Invalid                         // Move rejected, board untouched
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case LandedInOwnStore:
		return "extra-turn"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}
