package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scenarr/internal/matching"
)

type probeRow struct {
	Path    string   `json:"path"`
	Minutes *float64 `json:"minutes"`
	Format  string   `json:"format,omitempty"`
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <file>...",
		Short: "Report media durations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			prober := matching.NewProber(cfg, ctx.cliLogger(cmd))

			results := make([]probeRow, 0, len(args))
			for _, path := range args {
				res := prober.Probe(cmd.Context(), path)
				row := probeRow{Path: path, Format: res.Format()}
				if res.Known() {
					minutes := res.Minutes()
					row.Minutes = &minutes
				}
				results = append(results, row)
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				minutes := "unknown"
				if r.Minutes != nil {
					minutes = formatMinutes(r.Minutes)
				}
				rows = append(rows, []string{r.Path, minutes, r.Format})
			}
			columns := []column{pathColumn("File"), numberColumn("Minutes"), textColumn("Format")}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(columns, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	return cmd
}
