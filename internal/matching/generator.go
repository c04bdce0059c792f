package matching

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"scenarr/internal/logging"
	"scenarr/internal/media/duration"
	"scenarr/internal/textutil"
)

// Option configures a Generator or Service.
type Option func(*Generator)

// WithProber sets the duration prober. The default is duration.NewProber().
func WithProber(prober DurationProber) Option {
	return func(g *Generator) {
		if prober != nil {
			g.prober = prober
		}
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logging.NewComponentLogger(logger, "matching")
	}
}

// WithWorkers bounds how many entries are scored concurrently. Values below
// one select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// Generator produces match candidates for a fixed tolerance.
type Generator struct {
	tolerance int
	prober    DurationProber
	logger    *slog.Logger
	workers   int
}

// NewGenerator returns a Generator emitting pairs whose title score is at
// least tolerance. Tolerance is not clamped: 0 accepts every pair and values
// above 100 accept none.
func NewGenerator(tolerance int, opts ...Option) *Generator {
	g := &Generator{
		tolerance: tolerance,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.prober == nil {
		g.prober = duration.NewProber(duration.WithLogger(g.logger))
	}
	if g.workers < 1 {
		g.workers = runtime.NumCPU()
	}
	return g
}

// Tolerance returns the minimum title score.
func (g *Generator) Tolerance() int {
	return g.tolerance
}

type entryOutcome struct {
	candidates []Candidate
	rejection  *Rejection
}

// Generate scores every entry against every file. Candidates are ordered by
// entry, then by file, matching the input order. Entries with a blank title
// are reported in Result.Rejected. A cancelled context aborts the run and
// its error is returned.
func (g *Generator) Generate(ctx context.Context, entries []Entry, files []string) (Result, error) {
	names := make([]string, len(files))
	for i, file := range files {
		names[i] = textutil.Normalize(filepath.Base(file))
	}

	outcomes := make([]entryOutcome, len(entries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers)
	for i := range entries {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = g.scoreEntry(groupCtx, entries[i], files, names)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	result := Result{Candidates: []Candidate{}}
	for _, outcome := range outcomes {
		if outcome.rejection != nil {
			result.Rejected = append(result.Rejected, *outcome.rejection)
			continue
		}
		result.Candidates = append(result.Candidates, outcome.candidates...)
	}
	g.logger.Debug("match candidates generated",
		logging.Int("entries", len(entries)),
		logging.Int("files", len(files)),
		logging.Int("candidates", len(result.Candidates)),
		logging.Int("rejected", len(result.Rejected)),
		logging.Int("tolerance", g.tolerance),
	)
	return result, nil
}

func (g *Generator) scoreEntry(ctx context.Context, entry Entry, files, names []string) entryOutcome {
	if strings.TrimSpace(entry.Title) == "" {
		logging.WarnWithContext(g.logger, "catalog entry skipped", "entry_rejected",
			logging.Int64(logging.FieldSceneID, entry.ID),
			logging.String("reason", "blank title"),
			logging.String(logging.FieldErrorHint, "give the scene a title in the catalog"),
			logging.String(logging.FieldImpact, "scene excluded from suggestions"),
		)
		return entryOutcome{rejection: &Rejection{SceneID: entry.ID, Reason: "blank title"}}
	}

	title := textutil.Normalize(entry.Title)
	hasDate := entry.Date != nil && strings.TrimSpace(*entry.Date) != ""
	hasDuration := entry.Duration != nil && *entry.Duration != 0

	var out []Candidate
	for i, name := range names {
		score := textutil.PartialRatio(title, name)
		if score < g.tolerance {
			continue
		}
		candidate := Candidate{
			SceneID:    entry.ID,
			File:       files[i],
			TitleScore: score,
		}
		if hasDate {
			if ds := dateScore(*entry.Date, name, g.tolerance); ds >= g.tolerance {
				candidate.DateScore = &ds
			}
		}
		if hasDuration {
			candidate.DurationScore = DurationScore(g.prober.Probe(ctx, files[i]), entry.Duration)
		}
		out = append(out, candidate)
	}
	return entryOutcome{candidates: out}
}

// GenerateMatchCandidates discovers the files under root and scores entries
// against them with a default prober.
func GenerateMatchCandidates(ctx context.Context, entries []Entry, root string, tolerance int) (Result, error) {
	files, err := DirWalker{}.Files(ctx, root)
	if err != nil {
		return Result{}, err
	}
	return NewGenerator(tolerance).Generate(ctx, entries, files)
}
