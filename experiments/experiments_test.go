package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"mancala/config"
	"mancala/experiments/metrics"
	"mancala/game"
	"mancala/player"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func settings(t *testing.T) config.ExperimentConfig {
	return config.ExperimentConfig{
		OutputDir: t.TempDir(),
		Games:     2,
		MaxDepth:  2,
		Seed:      3,
	}
}

func TestRunDepthExperiment(t *testing.T) {
	s := settings(t)

	dir, err := RunDepthExperiment(context.Background(), s, game.NewStandardRules())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(s.OutputDir, "depth"), filepath.Dir(dir))

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 1+3, "Header, random baseline and one agent per depth")
	require.Equal(t, RandomAgent, configs[1][1])

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 1+2*2)
	for i, row := range games[1:] {
		require.Equal(t, strconv.Itoa(i%2), row[3], "Starting player alternates")
		store1, err := strconv.Atoi(row[5])
		require.NoError(t, err)
		store2, err := strconv.Atoi(row[6])
		require.NoError(t, err)
		require.Equal(t, 72, store1+store2)
	}

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	total := 0
	for _, row := range games[1:] {
		n, err := strconv.Atoi(row[10])
		require.NoError(t, err)
		total += n
	}
	require.Len(t, moves, 1+total)
}

func TestRunExtraTurnExperiment(t *testing.T) {
	s := settings(t)
	s.MaxDepth = 1

	dir, err := RunExtraTurnExperiment(context.Background(), s, game.NewFourStoneRules())
	require.NoError(t, err)

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Equal(t, []string{"1", MinimaxAgent, "1", "1", "false", "0"}, configs[1])
	require.Equal(t, []string{"2", MinimaxAgent, "1", "1", "true", "0"}, configs[2])
}

func TestRunParallelizationExperiment(t *testing.T) {
	s := settings(t)
	s.Games = 1

	dir, err := RunParallelizationExperiment(context.Background(), s, game.NewFourStoneRules())
	require.NoError(t, err)

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 1+len(parallelGoroutines))
}

func TestRunExperimentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunParallelizationExperiment(ctx, settings(t), game.NewStandardRules())

	require.ErrorIs(t, err, context.Canceled)
}

func TestCreateStrategy(t *testing.T) {
	random := createStrategy(metrics.AgentConfig{Kind: RandomAgent}, 1)
	require.IsType(t, &player.Random{}, random)

	search := createStrategy(metrics.AgentConfig{Kind: MinimaxAgent, Depth: 3, Goroutines: 2}, 1)
	require.IsType(t, &player.Search{}, search)

	pit, err := search.ChoosePit(context.Background(), game.NewStandardBoard(), 0)
	require.NoError(t, err)
	metric := search.(player.Reporter).Metrics()
	require.Equal(t, 3, metric.Depth)
	require.Equal(t, 2, metric.Goroutines)
	require.Contains(t, []int{0, 1, 2, 3, 4, 5}, pit)
}
