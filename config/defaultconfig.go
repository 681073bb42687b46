package config

import (
	"mancala/game"
	"mancala/searcher"
)

var DefaultConfig = Config{
	LogLevel: "info",
	Rules:    game.NewStandardRules(),
	Search: SearchConfig{
		Depth:      searcher.DefaultDepth,
		Goroutines: 1,
		Evaluation: "stores",
	},
	Experiment: ExperimentConfig{
		OutputDir: "data",
		Games:     30,
		MaxDepth:  4,
		Seed:      1,
	},
}
