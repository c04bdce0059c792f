// Package ffprobe wraps the ffprobe binary for container-level metadata.
//
// Only the format section is requested; stream details are not needed to
// recover a playable duration. The package has no scenarr-specific
// dependencies.
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns the parsed Format
package ffprobe
