package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// StatusFound marks a scene whose local file has been confirmed.
const StatusFound = "Found"

// Site is a publisher of scenes.
type Site struct {
	ID            int64    `json:"-"`
	UUID          string   `json:"uuid"`
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	Description   string   `json:"description"`
	Rating        *float64 `json:"rating"`
	Network       string   `json:"network"`
	Parent        string   `json:"parent"`
	Logo          string   `json:"logo"`
	HomeDirectory string   `json:"home_directory"`
}

// Scene is one catalog entry belonging to a site.
type Scene struct {
	ID         int64    `json:"id"`
	SiteID     int64    `json:"-"`
	Title      string   `json:"title"`
	Date       *string  `json:"date"`
	Duration   *float64 `json:"duration"`
	Image      string   `json:"image"`
	Performers string   `json:"performers"`
	Status     string   `json:"status"`
	LocalPath  string   `json:"local_path"`
}

// SiteCollection is a site together with all of its scenes.
type SiteCollection struct {
	Site   Site    `json:"site"`
	Scenes []Scene `json:"scenes"`
}

// SiteSummary is a site with scene counts, used for listings.
type SiteSummary struct {
	Site
	Scenes  int `json:"scene_count"`
	Matched int `json:"matched_count"`
}

// SiteImport is the document accepted by ImportSite.
type SiteImport struct {
	Site   SiteInput    `json:"site" yaml:"site"`
	Scenes []SceneInput `json:"scenes" yaml:"scenes"`
}

// SiteInput describes a site in an import document.
type SiteInput struct {
	UUID        string     `json:"uuid" yaml:"uuid"`
	Name        string     `json:"name" yaml:"name"`
	URL         string     `json:"url" yaml:"url"`
	Description string     `json:"description" yaml:"description"`
	Rating      RatingText `json:"rating" yaml:"rating"`
	Network     string     `json:"network" yaml:"network"`
	Parent      string     `json:"parent" yaml:"parent"`
	Logo        string     `json:"logo" yaml:"logo"`
}

// SceneInput describes a scene in an import document.
type SceneInput struct {
	Title      string   `json:"title" yaml:"title"`
	Date       *string  `json:"date" yaml:"date"`
	Duration   *float64 `json:"duration" yaml:"duration"`
	Image      string   `json:"image" yaml:"image"`
	Performers string   `json:"performers" yaml:"performers"`
}

// RatingText holds a rating supplied as either a string or a number.
// Blank and non-numeric values are stored as no rating.
type RatingText string

// UnmarshalJSON accepts strings, numbers, and null.
func (r *RatingText) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*r = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = RatingText(s)
		return nil
	}
	*r = RatingText(raw)
	return nil
}

// UnmarshalYAML accepts any scalar.
func (r *RatingText) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*r = RatingText(node.Value)
	}
	return nil
}

// Value parses the rating, returning nil when it is blank or not a number.
func (r RatingText) Value() *float64 {
	text := strings.TrimSpace(string(r))
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
