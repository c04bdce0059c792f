package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scenarr/internal/catalog"
	"scenarr/internal/config"
	"scenarr/internal/matching"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var siteUUID string
	var catalogFile string
	var dir string
	var tolerance int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Suggest local files for catalog scenes",
		Long: "Score files against the scenes of a stored site (--site) or of a site " +
			"document on disk (--catalog). Stored sites scan their home directory " +
			"unless --dir overrides it; --catalog always needs --dir.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("tolerance") {
				tolerance = cfg.Matching.Tolerance
			}
			siteUUID = strings.TrimSpace(siteUUID)
			catalogFile = strings.TrimSpace(catalogFile)
			dir = strings.TrimSpace(dir)
			if dir != "" {
				if dir, err = config.ExpandPath(dir); err != nil {
					return fmt.Errorf("resolve directory: %w", err)
				}
			}

			logger := ctx.cliLogger(cmd)
			opts := matching.OptionsFromConfig(cfg, logger)

			var result matching.Result
			var titles map[int64]string
			switch {
			case siteUUID != "" && catalogFile != "":
				return errors.New("--site and --catalog are mutually exclusive")
			case catalogFile != "":
				if dir == "" {
					return errors.New("--catalog requires --dir")
				}
				result, titles, err = matchImportFile(cmd.Context(), catalogFile, dir, tolerance, logger, opts)
			case siteUUID != "":
				err = ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
					var source matching.CatalogStore = store
					if dir != "" {
						source = homeOverride{CatalogStore: store, dir: dir}
					}
					svc := matching.NewService(source, nil, opts...)
					var suggestErr error
					result, suggestErr = svc.Suggest(cmd.Context(), siteUUID, tolerance)
					if suggestErr != nil {
						return suggestErr
					}
					titles, suggestErr = sceneTitles(cmd.Context(), store, siteUUID)
					return suggestErr
				})
			default:
				return errors.New("one of --site or --catalog is required")
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			renderMatchResult(cmd, result, titles)
			return nil
		},
	}

	cmd.Flags().StringVar(&siteUUID, "site", "", "UUID of a stored site")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Site document (JSON or YAML) to match without storing it")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to scan")
	cmd.Flags().IntVarP(&tolerance, "tolerance", "t", config.DefaultTolerance, "Minimum title score (0-100)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output candidates as JSON")
	return cmd
}

// homeOverride scans dir instead of the stored home directory while still
// requiring the site to exist.
type homeOverride struct {
	matching.CatalogStore
	dir string
}

func (h homeOverride) SiteHomeDirectory(ctx context.Context, siteUUID string) (string, error) {
	if _, err := h.CatalogStore.SiteHomeDirectory(ctx, siteUUID); err != nil {
		return "", err
	}
	return h.dir, nil
}

func matchImportFile(ctx context.Context, path, dir string, tolerance int, logger *slog.Logger, opts []matching.Option) (matching.Result, map[int64]string, error) {
	doc, err := catalog.LoadImportFile(path)
	if err != nil {
		return matching.Result{}, nil, err
	}
	entries := make([]matching.Entry, 0, len(doc.Scenes))
	titles := make(map[int64]string, len(doc.Scenes))
	for i, scene := range doc.Scenes {
		id := int64(i + 1)
		entries = append(entries, matching.Entry{
			ID:       id,
			Title:    scene.Title,
			Date:     scene.Date,
			Duration: scene.Duration,
		})
		titles[id] = scene.Title
	}

	gen := matching.NewGenerator(tolerance, opts...)
	files, err := matching.Discover(ctx, dir, logger)
	if err != nil {
		return matching.Result{}, nil, err
	}
	result, err := gen.Generate(ctx, entries, files)
	if err != nil {
		return matching.Result{}, nil, err
	}
	return result, titles, nil
}

func sceneTitles(ctx context.Context, store *catalog.Store, siteUUID string) (map[int64]string, error) {
	scenes, err := store.ScenesForSite(ctx, siteUUID)
	if err != nil {
		return nil, err
	}
	titles := make(map[int64]string, len(scenes))
	for _, scene := range scenes {
		titles[scene.ID] = scene.Title
	}
	return titles, nil
}

func renderMatchResult(cmd *cobra.Command, result matching.Result, titles map[int64]string) {
	out := cmd.OutOrStdout()
	if len(result.Candidates) == 0 {
		fmt.Fprintln(out, "No candidates met the tolerance")
	} else {
		rows := make([][]string, 0, len(result.Candidates))
		for _, c := range result.Candidates {
			rows = append(rows, []string{
				strconv.FormatInt(c.SceneID, 10),
				titles[c.SceneID],
				c.File,
				strconv.Itoa(c.TitleScore),
				formatScore(c.DateScore),
				formatScore(c.DurationScore),
			})
		}
		columns := []column{
			numberColumn("Scene"),
			textColumn("Title"),
			pathColumn("File"),
			numberColumn("Title Score"),
			numberColumn("Date"),
			numberColumn("Duration"),
		}
		fmt.Fprintln(out, renderTable(columns, rows))
	}
	for _, r := range result.Rejected {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped scene %d: %s\n", r.SceneID, r.Reason)
	}
}

func formatScore(score *int) string {
	if score == nil {
		return "-"
	}
	return strconv.Itoa(*score)
}
