package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scenarr/internal/catalog"
	"scenarr/internal/config"
)

func newSceneCommand(ctx *commandContext) *cobra.Command {
	sceneCmd := &cobra.Command{
		Use:   "scene",
		Short: "Manage catalog scenes",
	}

	sceneCmd.AddCommand(&cobra.Command{
		Use:   "match <id> <path>",
		Short: "Record the local file for a scene",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSceneID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				if err := store.MatchScene(cmd.Context(), id, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scene %d matched to %s\n", id, args[1])
				return nil
			})
		},
	})

	sceneCmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSceneID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				if err := store.RemoveScene(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed scene %d\n", id)
				return nil
			})
		},
	})

	return sceneCmd
}

func parseSceneID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid scene id %q", value)
	}
	return id, nil
}
