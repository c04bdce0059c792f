package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"scenarr/internal/catalog"
	"scenarr/internal/config"
	"scenarr/internal/daemon"
	"scenarr/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Paths.APIBind = bind
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				d, err := daemon.New(cfg, store, logger)
				if err != nil {
					return fmt.Errorf("create daemon: %w", err)
				}
				return d.Run(runCtx)
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override the API bind address")
	return cmd
}
