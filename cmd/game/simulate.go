package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tatianab/treasure-hunt/internal/console"
	"github.com/tatianab/treasure-hunt/internal/engine"
	"github.com/tatianab/treasure-hunt/internal/player"
)

var maxTurns int

// automaton is a player that answers for itself and watches the game.
type automaton interface {
	engine.Input
	engine.Output
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let a Gemini model play the hunt",
	Long:  "A Gemini model answers the riddles and picks the rooms. Requires GEMINI_API_KEY.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireGemini(); err != nil {
			return err
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		gm, err := player.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			return fmt.Errorf("failed to create player: %w", err)
		}
		defer gm.Close()

		return simulate(ctx, eng, gm, cmd.OutOrStdout(), maxTurns)
	},
}

func init() {
	simulateCmd.Flags().IntVar(&maxTurns, "max-turns", 30, "give up after this many rooms")
}

// simulate lets p play a fresh session and writes the transcript to w.
func simulate(ctx context.Context, eng *engine.Engine, p automaton, w io.Writer, turns int) error {
	transcript := console.New(strings.NewReader(""), w, 0)
	if err := transcript.Intro(ctx, eng.World()); err != nil {
		return err
	}

	s := eng.NewSession()
	outcome, err := eng.PlayTurns(ctx, s, transcript.Narrate(p), engine.Tee(transcript, p), turns)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nGame ended: %s (rewards: %s)\n", outcome, s.Inventory.String())
	return nil
}
