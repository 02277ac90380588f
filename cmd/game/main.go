package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tatianab/treasure-hunt/internal/config"
	"github.com/tatianab/treasure-hunt/internal/engine"
	"github.com/tatianab/treasure-hunt/internal/logging"
	"go.uber.org/zap"
)

var (
	// Global flags
	worldFile string
	pace      time.Duration
	verbose   bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "treasure-hunt",
	Short: "Solve riddles, collect keys, open the treasure",
	Long: `A text treasure hunt. Every room hides a riddle; solve it to collect its reward.
You need the master key before you reach the treasure room.

Run without arguments to play on the command line.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if cmd.Flags().Changed("world") {
			cfg.WorldFile = worldFile
		}
		if cmd.Flags().Changed("pace") {
			cfg.Pace = pace
		}
		if verbose {
			cfg.LogLevel = "debug"
		}

		logger, err = logging.New(cfg.LogLevel, cfg.LogFile)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPlay,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// After the first interrupt a second one kills the process.
	context.AfterFunc(ctx, stop)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&worldFile, "world", "w", "", "world definition YAML (default: built-in treasure hunt)")
	rootCmd.PersistentFlags().DurationVar(&pace, "pace", time.Second, "pause between rooms")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(simulateCmd)
}

func newEngine() (*engine.Engine, error) {
	w, err := cfg.World()
	if err != nil {
		return nil, err
	}
	logger.Debug("world loaded", zap.String("title", w.Title()), zap.Int("rooms", len(w.Rooms())))
	return engine.NewEngine(w, logger), nil
}
