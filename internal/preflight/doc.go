// Package preflight provides readiness checks for the filesystem paths and
// external binaries scenarr depends on.
//
// The CLI "scenarr doctor" command runs Run and renders the results; the
// individual check functions are exported so callers can probe a single path
// or binary. Checks gated by configuration (the ffprobe fallback) are skipped
// when the feature is off.
package preflight
