package game

const (
	StandardPlayers = 2
	StandardPits    = 6
	StandardStones  = 6
)

func NewStandardRules() Rules {
	return Rules{
		Players: StandardPlayers,
		Pits:    StandardPits,
		Stones:  StandardStones,
	}
}

// NewFourStoneRules returns the shorter variant with 4 stones per pit.
func NewFourStoneRules() Rules {
	return Rules{
		Players: StandardPlayers,
		Pits:    StandardPits,
		Stones:  4,
	}
}
