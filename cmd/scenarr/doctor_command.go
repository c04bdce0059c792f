package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scenarr/internal/catalog"
	"scenarr/internal/config"
	"scenarr/internal/preflight"
)

var errChecksFailed = errors.New("one or more checks failed")

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, catalog, and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				results := preflight.Run(cmd.Context(), cfg, store)
				if jsonOutput {
					if err := writeJSON(cmd, results); err != nil {
						return err
					}
				} else {
					out := cmd.OutOrStdout()
					colorize := shouldColorize(out)
					fmt.Fprintf(out, "Configuration: %s\n", ctx.configPath)
					for _, result := range results {
						status := checkPassed
						if !result.Passed {
							status = checkFailed
						}
						fmt.Fprintln(out, renderCheckLine(result.Name, status, result.Detail, colorize))
					}
				}
				if !preflight.AllPassed(results) {
					return errChecksFailed
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	return cmd
}
