package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"scenarr/internal/logging"
	"scenarr/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var level string
	var grep string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the server log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if _, ok := logs.ParseLevel(level); level != "" && !ok {
				return fmt.Errorf("unsupported level %q", level)
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			filter := logs.Filter{MinLevel: level, Contains: grep}
			out := cmd.OutOrStdout()

			chunk, err := logs.Tail(path, lines)
			if err != nil {
				return err
			}
			printLines(out, filter.Apply(chunk.Lines))
			if !follow {
				return nil
			}

			err = logs.Follow(cmd.Context(), path, chunk.Offset, 250*time.Millisecond, func(batch []string) error {
				printLines(out, filter.Apply(batch))
				return nil
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines as they are written")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level to show (debug, info, warn, error)")
	cmd.Flags().StringVar(&grep, "grep", "", "Only show lines containing this text")
	return cmd
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
