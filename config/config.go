package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"mancala/game"
	"mancala/searcher"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "mancala/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type SearchConfig struct {
	Depth      int    `json:"depth"`
	Goroutines int    `json:"goroutines"`
	ExtraTurns bool   `json:"extra_turns"`
	Evaluation string `json:"evaluation"` // "stores" or "material"
}

var evaluations = map[string]game.Evaluate{
	"stores":   game.EvaluateStores,
	"material": game.EvaluateMaterial,
}

// Options translates the configuration into minimax options.
func (c SearchConfig) Options() []searcher.Option {
	return []searcher.Option{
		searcher.WithDepth(c.Depth),
		searcher.WithGoroutines(c.Goroutines),
		searcher.WithExtraTurns(c.ExtraTurns),
		searcher.WithEvaluationFn(evaluations[c.Evaluation]),
	}
}

type ExperimentConfig struct {
	OutputDir string `json:"output_dir"`
	Games     int    `json:"games"` // Per match up
	MaxDepth  int    `json:"max_depth"`
	Seed      uint64 `json:"seed"`
}

type Config struct {
	LogLevel   string           `json:"log_level"`
	Rules      game.Rules       `json:"rules"`
	Search     SearchConfig     `json:"search"`
	Experiment ExperimentConfig `json:"experiment"`
}

// InitConfig starts from the defaults and applies the user's config file if
// one exists in the XDG config directories.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, config.Validate()
	}
	return Load(absPath)
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	if err := c.Rules.Validate(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Search.Depth < 1 {
		return &InvalidConfig{"search depth must be at least 1"}
	}
	if c.Search.Goroutines < 1 {
		return &InvalidConfig{"search goroutines must be at least 1"}
	}
	if _, ok := evaluations[c.Search.Evaluation]; !ok {
		return &InvalidConfig{fmt.Sprintf("unknown evaluation %q", c.Search.Evaluation)}
	}
	if c.Experiment.Games < 1 {
		return &InvalidConfig{"experiments need at least 1 game per match up"}
	}
	if c.Experiment.MaxDepth < 1 {
		return &InvalidConfig{"experiment max depth must be at least 1"}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
