package player

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mancala/experiments/metrics"
	"mancala/game"
	"mancala/searcher"
)

var ErrNoSelection = errors.New("no pit selected")

// Strategy chooses a pit for the player whose turn it is.
type Strategy interface {
	ChoosePit(ctx context.Context, b *game.Board, player int) (int, error)
}

// Reporter is implemented by strategies that collect search statistics.
type Reporter interface {
	Metrics() metrics.SearchMetric
}

// Difficulty selects the computer opponent.
type Difficulty int

const (
	Easy Difficulty = iota // Uniformly random legal pit
	Hard                   // Minimax search
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "0":
		return Easy, nil
	case "hard", "1":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("unknown difficulty %q", s)
	}
}

// ByDifficulty returns the computer strategy for d.
func ByDifficulty(d Difficulty, seed uint64, options ...searcher.Option) (Strategy, error) {
	switch d {
	case Easy:
		return NewRandom(seed), nil
	case Hard:
		return NewSearch(searcher.NewMinimax(options...)), nil
	default:
		return nil, fmt.Errorf("unknown difficulty %d", int(d))
	}
}
