package testsupport

import (
	"context"
	"testing"

	"scenarr/internal/catalog"
	"scenarr/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// ImportSite stores doc and returns the resulting site.
func ImportSite(t testing.TB, store *catalog.Store, doc catalog.SiteImport) *catalog.Site {
	t.Helper()

	site, _, err := store.ImportSite(context.Background(), doc)
	if err != nil {
		t.Fatalf("store.ImportSite: %v", err)
	}
	return site
}

// SampleSite returns an import document with two scenes, the first of which
// carries a date and a duration.
func SampleSite(uuid string) catalog.SiteImport {
	date := "2020-01-05"
	minutes := 95.0
	return catalog.SiteImport{
		Site: catalog.SiteInput{
			UUID:    uuid,
			Name:    "Classic Features",
			URL:     "https://example.com",
			Rating:  "4.5",
			Network: "Golden Age",
		},
		Scenes: []catalog.SceneInput{
			{Title: "Sunset Boulevard", Date: &date, Duration: &minutes, Performers: "Gloria Swanson"},
			{Title: "Double Indemnity"},
		},
	}
}
