// Package logging assembles structured slog loggers used across scenarr.
//
// It owns the console and JSON handlers, parses levels and output paths, and
// exposes helpers that keep field names consistent (component, site_uuid,
// scene_id, path, correlation_id). Request-scoped correlation IDs travel in
// the context and are attached with WithContext.
//
// Prefer these constructors over hand-rolled slog setup so every component
// writes the same shape of log line.
package logging
