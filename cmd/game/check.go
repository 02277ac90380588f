package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tatianab/treasure-hunt/internal/models"
)

var checkCmd = &cobra.Command{
	Use:   "check [world.yaml...]",
	Short: "Validate world definitions",
	Long: `Validates each world file and prints its rooms. With no arguments the
configured world (or the built-in one) is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			w, err := cfg.World()
			if err != nil {
				return err
			}
			printWorld(cmd, w)
			return nil
		}

		failed := 0
		for _, path := range args {
			w, err := models.LoadWorld(path)
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				failed++
				continue
			}
			fmt.Fprintf(out, "✓ %s\n", path)
			printWorld(cmd, w)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d worlds are invalid", failed, len(args))
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the configured world as YAML",
	Long:  "Writes the configured world (or the built-in one) to a YAML file, a starting point for new worlds.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := cfg.World()
		if err != nil {
			return err
		}
		if err := models.SaveWorld(w, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rooms)\n", args[0], len(w.Rooms()))
		return nil
	},
}

func printWorld(cmd *cobra.Command, w *models.World) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: start %q, master reward %q\n", w.Title(), w.Start(), w.MasterReward())
	for _, r := range w.Rooms() {
		exits := make([]string, len(r.Next))
		for i, n := range r.Next {
			exits[i] = string(n)
		}
		switch {
		case r.Terminal():
			fmt.Fprintf(out, "  %-14s (terminal)\n", r.ID)
		default:
			fmt.Fprintf(out, "  %-14s %-14s -> %s\n", r.ID, r.Reward, strings.Join(exits, ", "))
		}
	}
}
