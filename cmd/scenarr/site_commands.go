package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"scenarr/internal/catalog"
	"scenarr/internal/config"
)

func newSiteCommand(ctx *commandContext) *cobra.Command {
	siteCmd := &cobra.Command{
		Use:   "site",
		Short: "Manage catalog sites",
	}

	siteCmd.AddCommand(newSiteImportCommand(ctx))
	siteCmd.AddCommand(newSiteListCommand(ctx))
	siteCmd.AddCommand(newSiteScenesCommand(ctx))
	siteCmd.AddCommand(newSiteRemoveCommand(ctx))
	siteCmd.AddCommand(newSiteSetHomeCommand(ctx))

	return siteCmd
}

func newSiteImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a site document (JSON or YAML), replacing its scenes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := catalog.LoadImportFile(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				site, created, err := store.ImportSite(cmd.Context(), doc)
				if err != nil {
					return err
				}
				verb := "Updated"
				if created {
					verb = "Created"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s site %s (%s) with %d scenes\n", verb, site.Name, site.UUID, len(doc.Scenes))
				return nil
			})
		},
	}
}

func newSiteListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				sites, err := store.Sites(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					if sites == nil {
						sites = []catalog.SiteSummary{}
					}
					return writeJSON(cmd, sites)
				}
				if len(sites) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sites in catalog")
					return nil
				}
				rows := make([][]string, 0, len(sites))
				for _, site := range sites {
					rows = append(rows, []string{
						site.UUID,
						site.Name,
						site.Network,
						strconv.Itoa(site.Scenes),
						strconv.Itoa(site.Matched),
						site.HomeDirectory,
					})
				}
				columns := []column{
					textColumn("UUID"),
					textColumn("Name"),
					textColumn("Network"),
					numberColumn("Scenes"),
					numberColumn("Matched"),
					pathColumn("Home"),
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(columns, rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output sites as JSON")
	return cmd
}

func newSiteScenesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scenes <uuid>",
		Short: "List the scenes of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				scenes, err := store.ScenesForSite(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, scenes)
				}
				rows := make([][]string, 0, len(scenes))
				for _, scene := range scenes {
					rows = append(rows, []string{
						strconv.FormatInt(scene.ID, 10),
						scene.Title,
						derefString(scene.Date),
						formatMinutes(scene.Duration),
						scene.Status,
						scene.LocalPath,
					})
				}
				columns := []column{
					numberColumn("ID"),
					textColumn("Title"),
					textColumn("Date"),
					numberColumn("Minutes"),
					textColumn("Status"),
					pathColumn("Local Path"),
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(columns, rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output scenes as JSON")
	return cmd
}

func newSiteRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <uuid>",
		Short: "Remove a site and all of its scenes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				if err := store.RemoveSite(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed site %s\n", args[0])
				return nil
			})
		},
	}
}

func newSiteSetHomeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-home <uuid> <directory>",
		Short: "Set the directory scanned for a site's files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("home directory: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("home directory %s is not a directory", dir)
			}
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				if err := store.SetHomeDirectory(cmd.Context(), args[0], dir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Home directory for %s set to %s\n", args[0], dir)
				return nil
			})
		},
	}
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatMinutes(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', 1, 64)
}
