package matching

import (
	"context"

	"scenarr/internal/media/duration"
)

// Entry is one catalog record considered for matching.
type Entry struct {
	ID       int64
	Title    string
	Date     *string
	Duration *float64 // minutes
}

// Candidate pairs an entry with a file whose title score met the tolerance.
type Candidate struct {
	SceneID       int64  `json:"scene_id"`
	File          string `json:"suggested_file"`
	TitleScore    int    `json:"title_score"`
	DateScore     *int   `json:"date_score,omitempty"`
	DurationScore *int   `json:"duration_score,omitempty"`
}

// Rejection records an entry that could not be scored.
type Rejection struct {
	SceneID int64  `json:"scene_id"`
	Reason  string `json:"reason"`
}

// Result is the output of one generation run.
type Result struct {
	Candidates []Candidate `json:"candidates"`
	Rejected   []Rejection `json:"rejected,omitempty"`
}

// DurationProber reports media durations. *duration.Prober satisfies it.
type DurationProber interface {
	Probe(ctx context.Context, path string) duration.Result
}

// CatalogStore supplies site-scoped entries and the directory to scan.
type CatalogStore interface {
	SiteHomeDirectory(ctx context.Context, siteUUID string) (string, error)
	EntriesForSite(ctx context.Context, siteUUID string) ([]Entry, error)
}

// FileSource lists candidate files under root.
type FileSource interface {
	Files(ctx context.Context, root string) ([]string, error)
}
