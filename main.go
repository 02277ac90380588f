package main

import (
	"fmt"
	"os"

	"github.com/tatianab/treasure-hunt/internal/config"
	"github.com/tatianab/treasure-hunt/internal/engine"
	"github.com/tatianab/treasure-hunt/internal/logging"
	"github.com/tatianab/treasure-hunt/internal/tui"
)

// Starts the full-screen game straight away. The treasure-hunt command in
// cmd/game offers the other ways to play.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	w, err := cfg.World()
	if err != nil {
		return err
	}
	return tui.Run(engine.NewEngine(w, logger))
}
