package main

import (
	"cattrap/config"
	"cattrap/engine"
	"cattrap/experiments"
	"cattrap/game"
	"cattrap/searcher/agent"
	"cattrap/shell"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: cattrap [-config file] <command> [flags]

commands:
  play         interactive game: you block, the agent escapes
  serve        run the agent HTTP server
  watch        let a blocker play games against the agent
  move         read a board from a file (or stdin) and print the agent's move
  experiment   run strategies|evaluations|throughput experiments`

func main() {
	configPath := flag.String("config", "", "path of a cattrap.yaml config file")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Args()); err != nil {
		log.Error().Err(err).Msg("cattrap")
		os.Exit(1)
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func run(ctx context.Context, cfg config.Config, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return nil
	}

	switch args[0] {
	case "play":
		sc, err := shell.NewShellController(cfg.Size, cfg.Agent)
		if err != nil {
			return err
		}
		return sc.Loop(ctx)
	case "serve":
		fs := flag.NewFlagSet("serve", flag.ExitOnError)
		addr := fs.String("addr", cfg.Addr, "listen address")
		fs.Parse(args[1:])
		return agent.StartAgentServer(ctx, *addr)
	case "watch":
		fs := flag.NewFlagSet("watch", flag.ExitOnError)
		games := fs.Int("games", 1, "number of games")
		remote := fs.String("remote", cfg.RemoteURL, "agent server URL, empty to search in process")
		fs.Parse(args[1:])
		return watch(ctx, cfg, *games, *remote)
	case "move":
		return move(ctx, cfg, args[1:])
	case "experiment":
		fs := flag.NewFlagSet("experiment", flag.ExitOnError)
		parallel := fs.Int("parallel", cfg.Parallel, "games played at once, 0 for one per CPU")
		fs.Parse(args[1:])

		s := experiments.DefaultSettings()
		s.Dir, s.Size = cfg.ExperimentDir, cfg.Size
		if cfg.Games > 0 {
			s.Games = cfg.Games
		}
		if *parallel > 0 {
			s.Parallel = *parallel
		}
		switch fs.Arg(0) {
		case "strategies", "":
			return experiments.RunStrategyExperiment(ctx, s)
		case "evaluations":
			return experiments.RunEvaluationExperiment(ctx, s)
		case "throughput":
			return experiments.RunThroughputExperiment(ctx, s)
		default:
			return fmt.Errorf("unknown experiment %q", fs.Arg(0))
		}
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func watch(ctx context.Context, cfg config.Config, games int, remote string) error {
	rng := agent.NewRand()
	var escaper agent.Agent
	if remote != "" {
		escaper = engine.NewRemoteAgent(remote, cfg.Agent)
	} else {
		a, err := agent.New(cfg.Agent, agent.WithRand(rng), agent.WithMetrics())
		if err != nil {
			return err
		}
		escaper = a
	}

	var blocker engine.Blocker
	switch cfg.Blocker {
	case experiments.AdjacentBlocker:
		blocker = engine.NewAdjacentBlocker(rng)
	default:
		blocker = engine.NewRandomBlocker(rng)
	}

	for i := range games {
		board, err := game.NewRandomBoard(cfg.Size, rng)
		if err != nil {
			return err
		}
		log.Info().Msgf("game %d:\n%s", i+1, board)
		e := engine.LocalEngine(board, escaper, blocker)
		outcome, gameMetric, _, err := e.Run(ctx)
		if err != nil {
			return err
		}
		log.Info().Msgf("game %d: escaper %s after %d moves in %s\n%s", i+1, outcome, gameMetric.TotalMoves, gameMetric.Duration, e.Board)
	}
	return nil
}

// move answers a single move request from the command line.
func move(ctx context.Context, cfg config.Config, args []string) error {
	in := io.Reader(os.Stdin)
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	text, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	b, err := game.ParseBoard(string(text))
	if err != nil {
		return err
	}

	from := b.Escaper()
	coord, value, err := agent.ComputeMove(ctx, b, cfg.Agent)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(agent.NewMoveResponse(from, coord, value))
}
