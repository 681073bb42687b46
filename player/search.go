package player

import (
	"context"

	"mancala/experiments/metrics"
	"mancala/game"
	"mancala/searcher"
)

// Search plays the move found by a searcher.
type Search struct {
	searcher searcher.Searcher
}

func NewSearch(s searcher.Searcher) *Search {
	return &Search{searcher: s}
}

func (s *Search) ChoosePit(ctx context.Context, b *game.Board, player int) (int, error) {
	return s.searcher.BestMove(ctx, b, player)
}

// Metrics returns the statistics of the last search, if the searcher
// collects any.
func (s *Search) Metrics() metrics.SearchMetric {
	if reporter, ok := s.searcher.(Reporter); ok {
		return reporter.Metrics()
	}
	return metrics.SearchMetric{}
}
