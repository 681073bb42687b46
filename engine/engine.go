package engine

import (
	"context"

	"mancala/experiments/metrics"
)

const MaxMoves = 10000

type Runner interface {
	// Run plays a game till there's a winner or a max number of moves is reached
	Run(ctx context.Context) (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
