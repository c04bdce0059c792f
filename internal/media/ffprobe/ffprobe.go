package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBinary is used when no ffprobe executable is configured.
const DefaultBinary = "ffprobe"

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

type output struct {
	Format Format `json:"format"`
}

// Inspect executes ffprobe against path and decodes the format section.
func Inspect(ctx context.Context, binary string, path string) (Format, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Format{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path)
	raw, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return Format{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Format{}, fmt.Errorf("ffprobe inspect: %w", err)
	}
	return Parse(raw)
}

// Parse decodes ffprobe JSON output.
func Parse(raw []byte) (Format, error) {
	var out output
	if err := json.Unmarshal(raw, &out); err != nil {
		return Format{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return out.Format, nil
}

// DurationSeconds returns the container duration in seconds. It fails when
// ffprobe reported no duration or a value that is not a positive number.
func (f Format) DurationSeconds() (float64, error) {
	cleaned := strings.TrimSpace(f.Duration)
	if cleaned == "" || cleaned == "N/A" {
		return 0, errors.New("ffprobe: duration not reported")
	}
	seconds, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: parse duration %q: %w", cleaned, err)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0, fmt.Errorf("ffprobe: invalid duration %q", cleaned)
	}
	return seconds, nil
}
