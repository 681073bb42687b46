package experiments

import (
	"context"
	"fmt"

	"mancala/config"
	"mancala/engine"
	"mancala/experiments/metrics"
	"mancala/game"
	"mancala/player"
	"mancala/searcher"

	"github.com/rs/zerolog/log"
)

const (
	RandomAgent  = "random"
	MinimaxAgent = "minimax"
)

var parallelGoroutines = []int{1, 2, 4, 8}

// RunDepthExperiment pairs a random baseline against minimax agents of
// increasing depth and returns the directory holding the results.
func RunDepthExperiment(ctx context.Context, settings config.ExperimentConfig, rules game.Rules) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: RandomAgent, Seed: settings.Seed}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for depth := 1; depth <= settings.MaxDepth; depth++ {
		config := metrics.AgentConfig{ID: depth, Kind: MinimaxAgent, Depth: depth, Goroutines: 1}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(ctx, "depth", settings, rules, configs, matchUps)
}

// RunExtraTurnExperiment pairs minimax agents that search past extra turns
// against agents of the same depth that do not.
func RunExtraTurnExperiment(ctx context.Context, settings config.ExperimentConfig, rules game.Rules) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for depth := 1; depth <= settings.MaxDepth; depth++ {
		alternating := metrics.AgentConfig{ID: 2*depth - 1, Kind: MinimaxAgent, Depth: depth, Goroutines: 1}
		extraTurns := metrics.AgentConfig{ID: 2 * depth, Kind: MinimaxAgent, Depth: depth, Goroutines: 1, ExtraTurns: true}
		configs = append(configs, alternating, extraTurns)
		matchUps = append(matchUps, []metrics.AgentConfig{alternating, extraTurns})
	}

	return runExperiment(ctx, "extra_turns", settings, rules, configs, matchUps)
}

// RunParallelizationExperiment measures search throughput. Each matchup uses
// the same config for both players for the same playing strength and similar
// game length.
func RunParallelizationExperiment(ctx context.Context, settings config.ExperimentConfig, rules game.Rules) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, goroutines := range parallelGoroutines {
		config := metrics.AgentConfig{ID: i + 1, Kind: MinimaxAgent, Depth: settings.MaxDepth, Goroutines: goroutines}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return runExperiment(ctx, "parallelization", settings, rules, configs, matchUps)
}

func runExperiment(ctx context.Context, name string, settings config.ExperimentConfig, rules game.Rules, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < settings.Games; i++ {
			count++
			starting := i % 2
			seed := settings.Seed + uint64(count)

			winner, gameMetric, moveMetrics, err := runGame(ctx, config1, config2, rules, starting, seed)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Debug().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	dir, err := store(name, settings.OutputDir, configs, gameRecords, moveRecords)
	if err != nil {
		return "", err
	}
	log.Info().Str("dir", dir).Msg("stored experiment results")
	return dir, nil
}

func store(name, root string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, config1, config2 metrics.AgentConfig, rules game.Rules, starting int, seed uint64) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	players := []player.Strategy{
		createStrategy(config1, seed),
		createStrategy(config2, seed+1),
	}
	e, err := engine.LocalEngine(players, rules, starting)
	if err != nil {
		return game.NoWinner, metrics.GameMetric{}, nil, err
	}

	return e.Run(ctx)
}

func createStrategy(config metrics.AgentConfig, seed uint64) player.Strategy {
	if config.Kind == RandomAgent {
		return player.NewRandom(config.Seed + seed)
	}

	options := []searcher.Option{
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithExtraTurns(config.ExtraTurns),
	}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}

	options = append(options, searcher.WithMetrics())
	return player.NewSearch(searcher.NewMinimax(options...))
}
