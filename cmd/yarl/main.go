// yarl runs the game in the local terminal.
//
//	go run ./cmd/yarl [--config yarl.yaml] [--seed N] [--debug]
//
// Logs go to LOG_FILE when set; the terminal itself belongs to the game.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"yarl/internal/config"
	"yarl/internal/game"
	"yarl/internal/telemetry"
	"yarl/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "yarl.yaml", "Path to the YAML config file (optional)")
	seed := flag.Int64("seed", 0, "Dungeon seed (overrides config; 0 keeps the configured value)")
	debug := flag.Bool("debug", false, "Check world invariants after every turn")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(io.Discard); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *debug {
		cfg.Debug = true
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("telemetry setup failed, running without tracing")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Log.WithError(err).Warn("telemetry shutdown")
			}
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	g := game.New(screen, cfg)
	g.SaveRuns = true
	g.Name = os.Getenv("USER")
	return g.Run(ctx)
}
