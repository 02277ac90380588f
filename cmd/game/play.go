package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tatianab/treasure-hunt/internal/console"
	"github.com/tatianab/treasure-hunt/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on the command line",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Play full-screen",
	Long:  "Play in a full-screen terminal interface. Type /restart to start over or /quit to leave.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		return tui.Run(eng)
	},
}

func runPlay(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Pace)
	err = c.Intro(ctx, eng.World())
	if err == nil {
		_, err = eng.Play(ctx, eng.NewSession(), c, c)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout(), "\nGoodbye!")
		return nil
	}
	return err
}
