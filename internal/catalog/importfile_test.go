package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scenarr/internal/catalog"
)

func TestLoadImportFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.json")
	content := `{
  "site": {"uuid": "abc", "name": "Classic Features", "rating": 3, "logo": "logo.png"},
  "scenes": [
    {"title": "Sunset Boulevard", "date": "2020-01-05", "duration": 95},
    {"title": "Double Indemnity", "date": null, "duration": null}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := catalog.LoadImportFile(path)
	if err != nil {
		t.Fatalf("LoadImportFile: %v", err)
	}
	if doc.Site.UUID != "abc" || doc.Site.Logo != "logo.png" {
		t.Fatalf("unexpected site: %+v", doc.Site)
	}
	if r := doc.Site.Rating.Value(); r == nil || *r != 3 {
		t.Fatalf("unexpected rating: %v", r)
	}
	if len(doc.Scenes) != 2 || *doc.Scenes[0].Duration != 95 || doc.Scenes[1].Date != nil {
		t.Fatalf("unexpected scenes: %+v", doc.Scenes)
	}
}

func TestLoadImportFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yml")
	content := `site:
  uuid: abc
  name: Classic Features
  rating: ""
scenes:
  - title: Sunset Boulevard
    date: 2020-01-05
    duration: 95.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := catalog.LoadImportFile(path)
	if err != nil {
		t.Fatalf("LoadImportFile: %v", err)
	}
	if doc.Site.Rating.Value() != nil {
		t.Fatal("expected blank rating to be absent")
	}
	if len(doc.Scenes) != 1 || doc.Scenes[0].Date == nil || *doc.Scenes[0].Date != "2020-01-05" {
		t.Fatalf("unexpected scenes: %+v", doc.Scenes)
	}
}

func TestDecodeImportRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name   string
		format string
		body   string
	}{
		{name: "malformed json", format: "json", body: `{"site":`},
		{name: "missing name", format: "json", body: `{"site": {"uuid": "x"}, "scenes": []}`},
		{name: "blank title", format: "yaml", body: "site:\n  name: A\nscenes:\n  - title: \"\"\n"},
		{name: "unknown format", format: "xml", body: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.DecodeImport(strings.NewReader(tt.body), tt.format)
			if !errors.Is(err, catalog.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRatingTextValue(t *testing.T) {
	tests := map[catalog.RatingText]*float64{
		"":     nil,
		"abc":  nil,
		"NaN":  nil,
		" 4.5": ptr(4.5),
		"7":    ptr(7),
	}
	for input, want := range tests {
		got := input.Value()
		if (got == nil) != (want == nil) || (got != nil && *got != *want) {
			t.Fatalf("RatingText(%q).Value() = %v, want %v", input, got, want)
		}
	}
}

func ptr(v float64) *float64 { return &v }
