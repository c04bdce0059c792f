package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scenarr/internal/logging"
)

// ErrNoHomeDirectory reports a site without a configured scan directory.
var ErrNoHomeDirectory = errors.New("site has no home directory")

// Service produces site-scoped suggestions from a catalog store.
type Service struct {
	store CatalogStore
	files FileSource
	opts  []Option
}

// NewService wires store and files to generators built with opts. A nil
// FileSource selects DirWalker.
func NewService(store CatalogStore, files FileSource, opts ...Option) *Service {
	return &Service{store: store, files: files, opts: opts}
}

// Suggest scores the site's entries against the files under its home
// directory.
func (s *Service) Suggest(ctx context.Context, siteUUID string, tolerance int) (Result, error) {
	gen := NewGenerator(tolerance, s.opts...)
	logger := logging.WithContext(ctx, gen.logger).With(logging.String(logging.FieldSiteUUID, siteUUID))

	home, err := s.store.SiteHomeDirectory(ctx, siteUUID)
	if err != nil {
		return Result{}, fmt.Errorf("site %s: %w", siteUUID, err)
	}
	if strings.TrimSpace(home) == "" {
		return Result{}, fmt.Errorf("site %s: %w", siteUUID, ErrNoHomeDirectory)
	}
	entries, err := s.store.EntriesForSite(ctx, siteUUID)
	if err != nil {
		return Result{}, fmt.Errorf("site %s entries: %w", siteUUID, err)
	}

	source := s.files
	if source == nil {
		source = DirWalker{Logger: gen.logger}
	}
	files, err := source.Files(ctx, home)
	if err != nil {
		return Result{}, err
	}

	result, err := gen.Generate(ctx, entries, files)
	if err != nil {
		return Result{}, err
	}
	logger.Info("match suggestions ready",
		logging.String(logging.FieldPath, home),
		logging.Int("entries", len(entries)),
		logging.Int("files", len(files)),
		logging.Int("candidates", len(result.Candidates)),
		logging.Int("rejected", len(result.Rejected)),
		logging.Int("tolerance", tolerance),
	)
	return result, nil
}
