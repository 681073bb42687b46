package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"mancala/config"
	"mancala/experiments"
	"mancala/game"
	"mancala/player"
	"mancala/session"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file (default: XDG config dir)")
	logLevel := flag.String("log-level", "", "Log level, overrides the config file")
	experiment := flag.String("experiment", "", "Run an experiment: depth, extra_turns or parallelization")
	difficulty := flag.String("difficulty", "hard", "Computer opponent for interactive play: easy or hard")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *experiment != "" {
		dir, err := runExperiment(ctx, *experiment, cfg)
		if err != nil {
			log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
		}
		fmt.Println(dir)
		return
	}

	d, err := player.ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid difficulty")
	}
	if err := play(ctx, cfg, d, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.InitConfig()
}

func runExperiment(ctx context.Context, name string, cfg *config.Config) (string, error) {
	switch name {
	case "depth":
		return experiments.RunDepthExperiment(ctx, cfg.Experiment, cfg.Rules)
	case "extra_turns":
		return experiments.RunExtraTurnExperiment(ctx, cfg.Experiment, cfg.Rules)
	case "parallelization":
		return experiments.RunParallelizationExperiment(ctx, cfg.Experiment, cfg.Rules)
	default:
		return "", fmt.Errorf("unknown experiment %q", name)
	}
}

// play runs a console game against the computer. Pits are numbered from 1
// as printed on the bottom row.
func play(ctx context.Context, cfg *config.Config, difficulty player.Difficulty, in io.Reader, out io.Writer) error {
	store, err := session.NewStore(cfg.Rules, session.WithSeed(cfg.Experiment.Seed), session.WithSearchOptions(cfg.Search.Options()...))
	if err != nil {
		return err
	}
	data, err := store.Create(difficulty)
	if err != nil {
		return err
	}
	id := data.SessionID.String()

	scanner := bufio.NewScanner(in)
	for data.Winner == nil {
		if err := render(out, cfg.Rules, data); err != nil {
			return err
		}
		fmt.Fprintf(out, "Your move [1-%d]: ", cfg.Rules.Pits)
		if !scanner.Scan() {
			return scanner.Err()
		}
		pit, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, "Please enter a pit number.")
			continue
		}

		next, err := store.Play(ctx, id, pit-1)
		if err != nil {
			if next.Players == nil {
				return err
			}
			fmt.Fprintf(out, "Illegal move: %v\n", err)
			continue
		}
		data = next
	}

	if err := render(out, cfg.Rules, data); err != nil {
		return err
	}
	switch *data.Winner {
	case "draw":
		fmt.Fprintln(out, "It's a draw!")
	case strconv.Itoa(session.HumanPlayer):
		fmt.Fprintln(out, "You won!")
	default:
		fmt.Fprintln(out, "The computer won!")
	}
	return nil
}

func render(out io.Writer, rules game.Rules, data session.GameData) error {
	players := make([]game.Side, rules.Players)
	for i := range players {
		players[i] = data.Players[i]
	}
	board, err := game.FromSnapshot(game.Snapshot{Rules: rules, Players: players})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "\n%s\n\n", board)
	return err
}
