package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// Side is the part of the board owned by one player.
type Side struct {
	Pits  []int `json:"pits"`
	Store int   `json:"big_pit"`
}

func (s Side) copy() Side {
	pits := make([]int, len(s.Pits))
	copy(pits, s.Pits)
	return Side{Pits: pits, Store: s.Store}
}

// Board holds the authoritative game state. A Board is owned by a single
// turn-taker at a time and is not safe for concurrent mutation.
type Board struct {
	rules Rules
	sides []Side
}

// NewBoard creates a board in the initial position for the given rules.
func NewBoard(rules Rules) (*Board, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	b := &Board{rules: rules, sides: make([]Side, rules.Players)}
	b.Reset()
	return b, nil
}

// NewStandardBoard creates a 2 player board with 6 pits of 6 stones each.
func NewStandardBoard() *Board {
	b, err := NewBoard(NewStandardRules())
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) Rules() Rules {
	return b.rules
}

// Reset restores every pit and store to its initial value.
func (b *Board) Reset() {
	for i := range b.sides {
		pits := make([]int, b.rules.Pits)
		for j := range pits {
			pits[j] = b.rules.Stones
		}
		b.sides[i] = Side{Pits: pits}
	}
}

// Copy returns a deep copy of the board that shares no state with b.
func (b *Board) Copy() *Board {
	sides := make([]Side, len(b.sides))
	for i, side := range b.sides {
		sides[i] = side.copy()
	}
	return &Board{rules: b.rules, sides: sides}
}

// CheckPlayer reports whether player is a valid index on this board.
func (b *Board) CheckPlayer(player int) error {
	if player < 0 || player >= len(b.sides) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidPlayer, player, len(b.sides))
	}
	return nil
}

func (b *Board) Opponent(player int) int {
	return (player + 1) % len(b.sides)
}

// Pits returns a copy of the player's small pits.
func (b *Board) Pits(player int) []int {
	pits := make([]int, len(b.sides[player].Pits))
	copy(pits, b.sides[player].Pits)
	return pits
}

func (b *Board) Store(player int) int {
	return b.sides[player].Store
}

// ValidPitIndexes returns the non-empty pits of player in ascending order.
func (b *Board) ValidPitIndexes(player int) []int {
	if b.CheckPlayer(player) != nil {
		return nil
	}
	var valid []int
	for i, stones := range b.sides[player].Pits {
		if stones > 0 {
			valid = append(valid, i)
		}
	}
	return valid
}

// Move sows the stones of the player's pit. An illegal selection returns
// Invalid with an error and leaves the board unchanged.
func (b *Board) Move(player, pit int) (Outcome, error) {
	if err := b.CheckPlayer(player); err != nil {
		return Invalid, err
	}
	if pit < 0 || pit >= b.rules.Pits {
		return Invalid, fmt.Errorf("%w: pit %d not in [0,%d)", ErrIllegalMove, pit, b.rules.Pits)
	}
	own := &b.sides[player]
	stones := own.Pits[pit]
	if stones == 0 {
		return Invalid, fmt.Errorf("%w: pit %d is empty", ErrIllegalMove, pit)
	}
	own.Pits[pit] = 0
	return b.sow(player, pit+1, stones), nil
}

// sow distributes stones lap by lap: the mover's pits from cursor on, the
// mover's store, then every opponent pit, wrapping to the mover's pit 0.
func (b *Board) sow(player, cursor, stones int) Outcome {
	own := &b.sides[player]
	other := &b.sides[b.Opponent(player)]

	for stones > 0 {
		for ; cursor < b.rules.Pits && stones > 0; cursor++ {
			own.Pits[cursor]++
			stones--
			if stones == 0 && own.Pits[cursor] == 1 {
				b.capture(player, cursor)
				return Valid
			}
		}
		if stones == 0 {
			return Valid
		}

		own.Store++
		stones--
		if stones == 0 {
			return LandedInOwnStore
		}

		for i := 0; i < b.rules.Pits && stones > 0; i++ {
			other.Pits[i]++
			stones--
		}
		cursor = 0
	}
	return Valid
}

// capture moves the landing stone and the opponent's mirrored pit into the
// player's store.
func (b *Board) capture(player, pit int) {
	own := &b.sides[player]
	other := &b.sides[b.Opponent(player)]
	mirror := b.rules.Pits - 1 - pit

	captured := other.Pits[mirror]
	other.Pits[mirror] = 0
	own.Pits[pit] = 0
	own.Store += captured + 1
}

// Over reports whether any player has run out of stones. It never mutates
// the board.
func (b *Board) Over() bool {
	for _, side := range b.sides {
		if sum(side.Pits) == 0 {
			return true
		}
	}
	return false
}

// Verify checks that no stones were created or lost and that no pit or
// store went negative.
func (b *Board) Verify() error {
	total, negative := 0, false
	for _, side := range b.sides {
		total += sum(side.Pits) + side.Store
		negative = negative || side.Store < 0
		for _, stones := range side.Pits {
			negative = negative || stones < 0
		}
	}
	if expected := b.rules.TotalStones(); total != expected || negative {
		return &ConsistencyError{Expected: expected, Actual: total}
	}
	return nil
}

// Winner returns the winning player, Draw, or NoWinner while the game is in
// progress. Once a player's pits are all empty, every player's remaining
// stones are swept into their own store before the stores are compared.
// Winner panics with a *ConsistencyError if stones were created or lost.
func (b *Board) Winner() int {
	if err := b.Verify(); err != nil {
		panic(err)
	}
	if !b.Over() {
		return NoWinner
	}
	b.collect()
	return b.leader()
}

func (b *Board) collect() {
	for i := range b.sides {
		side := &b.sides[i]
		for j, stones := range side.Pits {
			side.Store += stones
			side.Pits[j] = 0
		}
	}
}

func (b *Board) leader() int {
	best, leader := -1, Draw
	for i, side := range b.sides {
		switch {
		case side.Store > best:
			best, leader = side.Store, i
		case side.Store == best:
			leader = Draw
		}
	}
	return leader
}

// Hash fingerprints pits and stores of every player.
func (b *Board) Hash() StateHash {
	hasher := fnv.New64a()
	for _, side := range b.sides {
		for _, stones := range side.Pits {
			binary.Write(hasher, binary.LittleEndian, int64(stones))
		}
		binary.Write(hasher, binary.LittleEndian, int64(side.Store))
	}
	return StateHash(hasher.Sum64())
}

// String renders the board with player 1 on top, pits mirrored so that
// facing pits line up, and player 0 on the bottom.
func (b *Board) String() string {
	var sb strings.Builder
	top, bottom := b.sides[1], b.sides[0]

	fmt.Fprintf(&sb, "[%02d]  ", top.Store)
	for i := len(top.Pits) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "[%02d]", top.Pits[i])
	}
	sb.WriteString("\n      ")
	for _, stones := range bottom.Pits {
		fmt.Fprintf(&sb, "[%02d]", stones)
	}
	fmt.Fprintf(&sb, "  [%02d]", bottom.Store)
	return sb.String()
}
