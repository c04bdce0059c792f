package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// LoadImportFile reads a site import document. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON.
func LoadImportFile(path string) (SiteImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteImport{}, fmt.Errorf("read import file: %w", err)
	}
	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	doc, err := DecodeImport(bytes.NewReader(data), format)
	if err != nil {
		return SiteImport{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// DecodeImport decodes a site import document in the given format ("json" or "yaml").
func DecodeImport(r io.Reader, format string) (SiteImport, error) {
	var doc SiteImport
	switch format {
	case "yaml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return SiteImport{}, fmt.Errorf("%w: decode yaml: %v", ErrInvalid, err)
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return SiteImport{}, fmt.Errorf("%w: decode json: %v", ErrInvalid, err)
		}
	default:
		return SiteImport{}, fmt.Errorf("%w: unsupported import format %q", ErrInvalid, format)
	}
	if err := validateImport(doc); err != nil {
		return SiteImport{}, err
	}
	return doc, nil
}
