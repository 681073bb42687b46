package searcher

import (
	"context"
	"testing"

	"mancala/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func boardFrom(t *testing.T, pits0 []int, store0 int, pits1 []int, store1 int) *game.Board {
	t.Helper()
	b, err := game.FromSnapshot(game.Snapshot{
		Rules: game.NewStandardRules(),
		Players: []game.Side{
			{Pits: pits0, Store: store0},
			{Pits: pits1, Store: store1},
		},
	})
	require.NoError(t, err)
	return b
}

// fullMinimax is an unpruned reference search.
func fullMinimax(b *game.Board, evalPlayer, toMove, depth int, maximizing, extraTurns bool) int {
	if b.Over() {
		b.Winner()
		return game.EvaluateStores(b, evalPlayer)
	}
	if depth == 0 {
		return game.EvaluateStores(b, evalPlayer)
	}
	best := Infinity
	if maximizing {
		best = -Infinity
	}
	for _, pit := range b.ValidPitIndexes(toMove) {
		child := b.Copy()
		outcome, _ := child.Move(toMove, pit)
		next, nextMaximizing := b.Opponent(toMove), !maximizing
		if extraTurns && outcome == game.LandedInOwnStore {
			next, nextMaximizing = toMove, maximizing
		}
		score := fullMinimax(child, evalPlayer, next, depth-1, nextMaximizing, extraTurns)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

func fullBestMove(b *game.Board, player, depth int, extraTurns bool) int {
	bestPit, bestScore := -1, -Infinity
	for _, pit := range b.ValidPitIndexes(player) {
		child := b.Copy()
		outcome, _ := child.Move(player, pit)
		next, maximizing := b.Opponent(player), false
		if extraTurns && outcome == game.LandedInOwnStore {
			next, maximizing = player, true
		}
		score := fullMinimax(child, player, next, depth-1, maximizing, extraTurns)
		if bestPit < 0 || score > bestScore {
			bestPit, bestScore = pit, score
		}
	}
	return bestPit
}

// randomPositions plays random moves from the initial position and returns
// the positions reached together with the player to move.
func randomPositions(seed uint64, count int) ([]*game.Board, []int) {
	rng := rand.New(rand.NewSource(seed))
	var boards []*game.Board
	var players []int
	for len(boards) < count {
		b := game.NewStandardBoard()
		player := 0
		plies := rng.Intn(30)
		for i := 0; i < plies && !b.Over(); i++ {
			pits := b.ValidPitIndexes(player)
			outcome, _ := b.Move(player, pits[rng.Intn(len(pits))])
			if outcome != game.LandedInOwnStore {
				player = b.Opponent(player)
			}
		}
		if !b.Over() {
			boards = append(boards, b)
			players = append(players, player)
		}
	}
	return boards, players
}

func TestMinimaxBestMove(t *testing.T) {
	t.Run("equal scores keep the lowest pit", func(t *testing.T) {
		m := NewMinimax(WithDepth(1))

		pit, err := m.BestMove(context.Background(), game.NewStandardBoard(), 0)

		require.NoError(t, err)
		require.Equal(t, 0, pit, "Every opening move scores 1 at depth 1")
	})

	t.Run("prefers a capture", func(t *testing.T) {
		b := boardFrom(t, []int{1, 0, 8, 8, 8, 8}, 2, []int{0, 8, 7, 7, 7, 7}, 1)
		m := NewMinimax(WithDepth(1))

		pit, err := m.BestMove(context.Background(), b, 0)

		require.NoError(t, err)
		require.Equal(t, 0, pit)
	})

	t.Run("looks at the opponent's reply", func(t *testing.T) {
		// Every move gains one stone at depth 1, but pit 2 is the only one
		// that does not lose ground to the opponent's best reply.
		b := boardFrom(t, []int{6, 7, 14, 3, 0, 1}, 8, []int{5, 0, 1, 1, 13, 5}, 8)

		shallow, err := NewMinimax(WithDepth(1)).BestMove(context.Background(), b, 0)
		require.NoError(t, err)
		deep, err := NewMinimax(WithDepth(2)).BestMove(context.Background(), b, 0)
		require.NoError(t, err)

		require.Equal(t, 0, shallow)
		require.Equal(t, 2, deep)
	})

	t.Run("scores finished games after the sweep", func(t *testing.T) {
		// Capturing with pit 0 looks better on the stores alone, but it lets
		// the opponent end the game and keep the stones left on their side.
		b := boardFrom(t, []int{1, 0, 1, 0, 0, 0}, 8, []int{1, 0, 1, 0, 3, 2}, 55)

		pit, err := NewMinimax(WithDepth(2)).BestMove(context.Background(), b, 0)

		require.NoError(t, err)
		require.Equal(t, 2, pit)
	})

	t.Run("does not mutate the board", func(t *testing.T) {
		b := boardFrom(t, []int{1, 0, 8, 8, 8, 8}, 2, []int{0, 8, 7, 7, 7, 7}, 1)
		before := b.Snapshot()
		m := NewMinimax(WithDepth(4))

		_, err := m.BestMove(context.Background(), b, 0)
		require.NoError(t, err)
		_, err = m.ChooseMove(b, 1)
		require.NoError(t, err)

		require.Equal(t, before, b.Snapshot())
	})

	t.Run("no legal moves", func(t *testing.T) {
		b := boardFrom(t, []int{0, 0, 0, 0, 0, 0}, 36, []int{6, 6, 6, 6, 6, 6}, 0)

		_, err := NewMinimax().BestMove(context.Background(), b, 0)

		require.ErrorIs(t, err, ErrNoLegalMoves)
	})

	t.Run("invalid player", func(t *testing.T) {
		_, err := NewMinimax().ChooseMove(game.NewStandardBoard(), 2)

		require.ErrorIs(t, err, game.ErrInvalidPlayer)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		for _, goroutines := range []int{1, 4} {
			_, err := NewMinimax(WithGoroutines(goroutines)).BestMove(ctx, game.NewStandardBoard(), 0)
			require.ErrorIs(t, err, context.Canceled, "goroutines=%d", goroutines)
		}
	})
}

func TestMinimaxMatchesUnprunedSearch(t *testing.T) {
	boards, players := randomPositions(7, 40)
	for _, extraTurns := range []bool{false, true} {
		for _, depth := range []int{1, 2, 3, 4} {
			sequential := NewMinimax(WithDepth(depth), WithExtraTurns(extraTurns))
			parallel := NewMinimax(WithDepth(depth), WithExtraTurns(extraTurns), WithGoroutines(4))

			for i, b := range boards {
				expected := fullBestMove(b, players[i], depth, extraTurns)

				got, err := sequential.BestMove(context.Background(), b, players[i])
				require.NoError(t, err)
				require.Equal(t, expected, got, "sequential depth=%d extraTurns=%v board=\n%s", depth, extraTurns, b)

				got, err = parallel.BestMove(context.Background(), b, players[i])
				require.NoError(t, err)
				require.Equal(t, expected, got, "parallel depth=%d extraTurns=%v board=\n%s", depth, extraTurns, b)
			}
		}
	}
}

func TestMinimaxMetrics(t *testing.T) {
	t.Run("collected when enabled", func(t *testing.T) {
		m := NewMinimax(WithDepth(4), WithMetrics())

		_, err := m.BestMove(context.Background(), game.NewStandardBoard(), 0)
		require.NoError(t, err)

		metric := m.Metrics()
		require.Equal(t, 4, metric.Depth)
		require.Equal(t, 1, metric.Goroutines)
		require.Greater(t, metric.Nodes, 6)
		require.Greater(t, metric.Cutoffs, 0, "Alpha-beta should prune at depth 4")
	})

	t.Run("counters reset between searches", func(t *testing.T) {
		m := NewMinimax(WithDepth(2), WithMetrics())

		_, err := m.BestMove(context.Background(), game.NewStandardBoard(), 0)
		require.NoError(t, err)
		first := m.Metrics().Nodes
		_, err = m.BestMove(context.Background(), game.NewStandardBoard(), 0)
		require.NoError(t, err)

		require.Equal(t, first, m.Metrics().Nodes)
	})

	t.Run("empty without collector", func(t *testing.T) {
		m := NewMinimax()

		_, err := m.BestMove(context.Background(), game.NewStandardBoard(), 0)
		require.NoError(t, err)

		require.Zero(t, m.Metrics().Nodes)
	})
}

func TestNewMinimaxOptions(t *testing.T) {
	m := NewMinimax(WithDepth(0), WithGoroutines(-1), WithEvaluationFn(nil))

	require.Equal(t, DefaultDepth, m.depth)
	require.Equal(t, 1, m.goroutines)
	require.NotNil(t, m.evaluate)
	require.False(t, m.extraTurns)
}
