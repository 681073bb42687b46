package game

import "fmt"

// Snapshot is the plain-data form of a board, suitable for whatever
// persistence mechanism the caller chooses.
type Snapshot struct {
	Rules   Rules  `json:"rules"`
	Players []Side `json:"players"`
}

func (b *Board) Snapshot() Snapshot {
	sides := make([]Side, len(b.sides))
	for i, side := range b.sides {
		sides[i] = side.copy()
	}
	return Snapshot{Rules: b.rules, Players: sides}
}

// FromSnapshot rebuilds a board, rejecting snapshots whose shape does not
// match their rules or whose stone count is not conserved.
func FromSnapshot(s Snapshot) (*Board, error) {
	if err := s.Rules.Validate(); err != nil {
		return nil, err
	}
	if len(s.Players) != s.Rules.Players {
		return nil, fmt.Errorf("%w: snapshot has %d players, rules expect %d", ErrInvalidRules, len(s.Players), s.Rules.Players)
	}
	sides := make([]Side, len(s.Players))
	for i, side := range s.Players {
		if len(side.Pits) != s.Rules.Pits {
			return nil, fmt.Errorf("%w: player %d has %d pits, rules expect %d", ErrInvalidRules, i, len(side.Pits), s.Rules.Pits)
		}
		sides[i] = side.copy()
	}
	b := &Board{rules: s.Rules, sides: sides}
	if err := b.Verify(); err != nil {
		return nil, fmt.Errorf("snapshot rejected: %w", err)
	}
	return b, nil
}
