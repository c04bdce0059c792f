package preflight

import (
	"context"
	"fmt"
	"strings"

	"scenarr/internal/catalog"
	"scenarr/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Catalog is the store surface inspected by Run.
type Catalog interface {
	Ping(ctx context.Context) error
	Path() string
	Sites(ctx context.Context) ([]catalog.SiteSummary, error)
}

// Run executes all applicable preflight checks for the given config. A nil
// store skips the catalog and home directory checks.
func Run(ctx context.Context, cfg *config.Config, store Catalog) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir, true),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, true),
		CheckBindAddress("API bind", cfg.Paths.APIBind),
	}

	if cfg.Matching.FFprobeFallback {
		results = append(results, CheckBinary("FFprobe", cfg.Matching.FFprobeBinary))
	}

	if store == nil {
		return results
	}
	results = append(results, CheckCatalog(ctx, store))
	sites, err := store.Sites(ctx)
	if err != nil {
		return append(results, Result{Name: "Site home directories", Detail: fmt.Sprintf("list sites: %v", err)})
	}
	for _, site := range sites {
		if strings.TrimSpace(site.HomeDirectory) == "" {
			continue
		}
		results = append(results, CheckDirectoryAccess("Home: "+site.Name, site.HomeDirectory, false))
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
