package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"scenarr/internal/catalog"
	"scenarr/internal/testsupport"
)

func TestOpenCreatesSchemaAndReopens(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	if store.Path() != filepath.Join(cfg.Paths.DataDir, "catalog.db") {
		t.Fatalf("unexpected db path: %q", store.Path())
	}
	testsupport.ImportSite(t, store, testsupport.SampleSite("site-1"))
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	if _, err := reopened.Site(context.Background(), "site-1"); err != nil {
		t.Fatalf("expected site to persist across reopen: %v", err)
	}
}

func TestImportSiteCreatesThenReplacesScenes(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	site, created, err := store.ImportSite(ctx, testsupport.SampleSite("site-1"))
	if err != nil {
		t.Fatalf("ImportSite: %v", err)
	}
	if !created {
		t.Fatal("expected first import to create the site")
	}
	if site.Rating == nil || *site.Rating != 4.5 {
		t.Fatalf("unexpected rating: %v", site.Rating)
	}
	if err := store.SetHomeDirectory(ctx, "site-1", "/library/classics"); err != nil {
		t.Fatalf("SetHomeDirectory: %v", err)
	}

	update := testsupport.SampleSite("site-1")
	update.Site.Name = "Classic Features HD"
	update.Site.Rating = "n/a"
	update.Scenes = []catalog.SceneInput{{Title: "Sunset Boulevard (Restored)"}}
	site, created, err = store.ImportSite(ctx, update)
	if err != nil {
		t.Fatalf("ImportSite update: %v", err)
	}
	if created {
		t.Fatal("expected second import to update")
	}
	if site.Name != "Classic Features HD" || site.Rating != nil {
		t.Fatalf("unexpected updated site: %+v", site)
	}
	if site.HomeDirectory != "/library/classics" {
		t.Fatalf("expected home directory to survive re-import, got %q", site.HomeDirectory)
	}

	scenes, err := store.ScenesForSite(ctx, "site-1")
	if err != nil {
		t.Fatalf("ScenesForSite: %v", err)
	}
	if len(scenes) != 1 || scenes[0].Title != "Sunset Boulevard (Restored)" {
		t.Fatalf("expected scenes to be replaced, got %+v", scenes)
	}
}

func TestImportSiteAssignsUUIDAndValidates(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	site, created, err := store.ImportSite(ctx, testsupport.SampleSite(""))
	if err != nil {
		t.Fatalf("ImportSite: %v", err)
	}
	if !created || len(site.UUID) != 36 {
		t.Fatalf("expected generated uuid, got %q", site.UUID)
	}

	noName := testsupport.SampleSite("x")
	noName.Site.Name = " "
	if _, _, err := store.ImportSite(ctx, noName); !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for blank name, got %v", err)
	}
	noTitle := testsupport.SampleSite("y")
	noTitle.Scenes = append(noTitle.Scenes, catalog.SceneInput{Title: ""})
	if _, _, err := store.ImportSite(ctx, noTitle); !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for blank title, got %v", err)
	}
	if _, err := store.Site(ctx, "y"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected rejected import to store nothing, got %v", err)
	}
}

func TestCollectionGroupsScenesBySite(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	empty, err := store.Collection(ctx)
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", empty)
	}

	testsupport.ImportSite(t, store, testsupport.SampleSite("a"))
	other := testsupport.SampleSite("b")
	other.Scenes = nil
	testsupport.ImportSite(t, store, other)

	collection, err := store.Collection(ctx)
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	if len(collection) != 2 {
		t.Fatalf("expected two sites, got %d", len(collection))
	}
	if collection[0].Site.UUID != "a" || len(collection[0].Scenes) != 2 {
		t.Fatalf("unexpected first site: %+v", collection[0])
	}
	if collection[1].Site.UUID != "b" || collection[1].Scenes == nil || len(collection[1].Scenes) != 0 {
		t.Fatalf("unexpected second site: %+v", collection[1])
	}
	first := collection[0].Scenes[0]
	if first.Date == nil || *first.Date != "2020-01-05" || first.Duration == nil || *first.Duration != 95 {
		t.Fatalf("unexpected scene fields: %+v", first)
	}
}

func TestRemoveSiteDeletesScenes(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.ImportSite(t, store, testsupport.SampleSite("site-1"))

	scenes, err := store.ScenesForSite(ctx, "site-1")
	if err != nil {
		t.Fatalf("ScenesForSite: %v", err)
	}
	if err := store.RemoveSite(ctx, "site-1"); err != nil {
		t.Fatalf("RemoveSite: %v", err)
	}
	if _, err := store.Scene(ctx, scenes[0].ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected scene to be gone, got %v", err)
	}
	if err := store.RemoveSite(ctx, "site-1"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second removal, got %v", err)
	}
}

func TestMatchAndRemoveScene(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.ImportSite(t, store, testsupport.SampleSite("site-1"))
	scenes, err := store.ScenesForSite(ctx, "site-1")
	if err != nil {
		t.Fatalf("ScenesForSite: %v", err)
	}
	id := scenes[0].ID

	if err := store.MatchScene(ctx, id, "/library/Sunset.Boulevard.mkv"); err != nil {
		t.Fatalf("MatchScene: %v", err)
	}
	scene, err := store.Scene(ctx, id)
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	if scene.Status != catalog.StatusFound || scene.LocalPath != "/library/Sunset.Boulevard.mkv" {
		t.Fatalf("unexpected matched scene: %+v", scene)
	}
	if err := store.MatchScene(ctx, id, " "); !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for blank path, got %v", err)
	}
	if err := store.MatchScene(ctx, 9999, "/x"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	summaries, err := store.Sites(ctx)
	if err != nil {
		t.Fatalf("Sites: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Scenes != 2 || summaries[0].Matched != 1 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	if err := store.RemoveScene(ctx, id); err != nil {
		t.Fatalf("RemoveScene: %v", err)
	}
	if err := store.RemoveScene(ctx, id); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second removal, got %v", err)
	}
}

func TestMatchingStoreInterface(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.ImportSite(t, store, testsupport.SampleSite("site-1"))

	home, err := store.SiteHomeDirectory(ctx, "site-1")
	if err != nil || home != "" {
		t.Fatalf("expected empty home directory, got %q err=%v", home, err)
	}
	if err := store.SetHomeDirectory(ctx, "site-1", " /library "); err != nil {
		t.Fatalf("SetHomeDirectory: %v", err)
	}
	if home, _ = store.SiteHomeDirectory(ctx, "site-1"); home != "/library" {
		t.Fatalf("unexpected home directory: %q", home)
	}
	if err := store.SetHomeDirectory(ctx, "missing", "/x"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.SiteHomeDirectory(ctx, "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	entries, err := store.EntriesForSite(ctx, "site-1")
	if err != nil {
		t.Fatalf("EntriesForSite: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}
	if entries[0].Title != "Sunset Boulevard" || entries[0].Duration == nil || entries[0].Date == nil {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Date != nil || entries[1].Duration != nil {
		t.Fatalf("expected optional fields absent on second entry: %+v", entries[1])
	}
}
