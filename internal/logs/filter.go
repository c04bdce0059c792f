package logs

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Filter selects log lines by minimum level and substring. The zero value
// keeps every line.
type Filter struct {
	// MinLevel is a level name ("debug", "info", "warn", "error"). Blank
	// disables level filtering.
	MinLevel string
	Contains string
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(value string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// LineLevel extracts the level of a console or JSON log line.
func LineLevel(line string) (slog.Level, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		var rec struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal([]byte(trimmed), &rec); err != nil || rec.Level == "" {
			return 0, false
		}
		return ParseLevel(rec.Level)
	}
	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return 0, false
	}
	return ParseLevel(fields[1])
}

// Match reports whether line passes the filter. Lines without a recognizable
// level, such as continuation lines, pass the level check.
func (f Filter) Match(line string) bool {
	if floor, ok := ParseLevel(f.MinLevel); ok {
		if level, ok := LineLevel(line); ok && level < floor {
			return false
		}
	}
	if f.Contains != "" && !strings.Contains(strings.ToLower(line), strings.ToLower(f.Contains)) {
		return false
	}
	return true
}

// Apply returns the lines that pass the filter.
func (f Filter) Apply(lines []string) []string {
	out := lines[:0:0]
	for _, line := range lines {
		if f.Match(line) {
			out = append(out, line)
		}
	}
	return out
}
