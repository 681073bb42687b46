package searcher

import (
	"context"
	"fmt"

	"mancala/experiments/metrics"
	"mancala/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(m *Minimax)

// Minimax searches a bounded number of plies with alpha-beta pruning. A
// Minimax must not run two searches at the same time.
type Minimax struct {
	depth      int
	goroutines int
	extraTurns bool
	evaluate   game.Evaluate
	metrics    metrics.Collector
	last       metrics.SearchMetric
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithGoroutines searches root branches concurrently. The chosen move is the
// same as with a sequential search.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithExtraTurns lets a player who lands in their own store move again at the
// next ply instead of handing the turn to the opponent.
func WithExtraTurns(enabled bool) Option {
	return func(m *Minimax) {
		m.extraTurns = enabled
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:      DefaultDepth,
		goroutines: 1,
		evaluate:   game.EvaluateStores,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// Metrics returns the statistics of the last search. They are only collected
// when the searcher was built WithMetrics.
func (m *Minimax) Metrics() metrics.SearchMetric {
	return m.last
}

// ChooseMove picks a pit for player without touching b.
func (m *Minimax) ChooseMove(b *game.Board, player int) (int, error) {
	return m.BestMove(context.Background(), b.Copy(), player)
}

// BestMove returns the legal pit with the highest score for player. Ties go
// to the lowest pit index. Every candidate is played on a copy of b.
func (m *Minimax) BestMove(ctx context.Context, b *game.Board, player int) (int, error) {
	if err := b.CheckPlayer(player); err != nil {
		return -1, err
	}
	pits := b.ValidPitIndexes(player)
	if len(pits) == 0 {
		return -1, fmt.Errorf("player %d: %w", player, ErrNoLegalMoves)
	}

	m.metrics.Start(m.goroutines, m.depth, m.extraTurns)
	var (
		pit   int
		score int
		err   error
	)
	if m.goroutines > 1 && len(pits) > 1 {
		pit, score, err = m.searchParallel(ctx, b, player, pits)
	} else {
		pit, score, err = m.searchSequential(ctx, b, player, pits)
	}
	m.last = m.metrics.Complete()
	if err != nil {
		return -1, err
	}

	log.Debug().
		Int("player", player).
		Int("pit", pit).
		Int("score", score).
		Int("depth", m.depth).
		Int("nodes", m.last.Nodes).
		Msg("minimax-best-move")
	return pit, nil
}

func (m *Minimax) searchSequential(ctx context.Context, b *game.Board, player int, pits []int) (int, int, error) {
	alpha, beta := -Infinity, Infinity
	bestPit, bestScore := -1, -Infinity
	for _, pit := range pits {
		if err := ctx.Err(); err != nil {
			return -1, 0, err
		}
		score := m.scoreRoot(b, player, pit, alpha, beta)
		if bestPit < 0 || score > bestScore {
			bestPit, bestScore = pit, score
		}
		alpha = max(alpha, bestScore)
	}
	return bestPit, bestScore, nil
}

// searchParallel scores every root branch with a full window so that each
// score is exact, then applies the same first-best rule as the sequential
// search.
func (m *Minimax) searchParallel(ctx context.Context, b *game.Board, player int, pits []int) (int, int, error) {
	scores := make([]int, len(pits))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.goroutines)
	for i, pit := range pits {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores[i] = m.scoreRoot(b, player, pit, -Infinity, Infinity)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return -1, 0, err
	}

	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return pits[best], scores[best], nil
}

func (m *Minimax) scoreRoot(b *game.Board, player, pit, alpha, beta int) int {
	child := b.Copy()
	outcome := mustMove(child, player, pit)
	next, maximizing := m.successor(child, player, outcome, true)
	return m.minimax(player, next, child, m.depth-1, maximizing, alpha, beta)
}

// minimax scores b for evalPlayer with toMove about to play.
func (m *Minimax) minimax(evalPlayer, toMove int, b *game.Board, depth int, maximizing bool, alpha, beta int) int {
	m.metrics.AddNode()
	if b.Over() {
		b.Winner() // Sweep remaining stones before scoring
		return m.evaluate(b, evalPlayer)
	}
	if depth == 0 {
		return m.evaluate(b, evalPlayer)
	}

	if maximizing {
		best := -Infinity
		for _, pit := range b.ValidPitIndexes(toMove) {
			child := b.Copy()
			outcome := mustMove(child, toMove, pit)
			next, nextMaximizing := m.successor(child, toMove, outcome, maximizing)
			best = max(best, m.minimax(evalPlayer, next, child, depth-1, nextMaximizing, alpha, beta))
			alpha = max(alpha, best)
			if alpha >= beta {
				m.metrics.AddCutoff()
				break
			}
		}
		return best
	}

	best := Infinity
	for _, pit := range b.ValidPitIndexes(toMove) {
		child := b.Copy()
		outcome := mustMove(child, toMove, pit)
		next, nextMaximizing := m.successor(child, toMove, outcome, maximizing)
		best = min(best, m.minimax(evalPlayer, next, child, depth-1, nextMaximizing, alpha, beta))
		beta = min(beta, best)
		if alpha >= beta {
			m.metrics.AddCutoff()
			break
		}
	}
	return best
}

// successor returns who moves after mover and whether that ply maximizes.
func (m *Minimax) successor(b *game.Board, mover int, outcome game.Outcome, maximizing bool) (int, bool) {
	if m.extraTurns && outcome == game.LandedInOwnStore {
		return mover, maximizing
	}
	return b.Opponent(mover), !maximizing
}

func mustMove(b *game.Board, player, pit int) game.Outcome {
	outcome, err := b.Move(player, pit)
	if err != nil {
		panic(fmt.Sprintf("search played an illegal move: %v", err))
	}
	return outcome
}
