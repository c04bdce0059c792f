// Package logs reads the scenarr log file for the CLI.
//
// Tail returns the last N lines and the offset to resume from, ReadFrom picks
// up after an offset, and Follow polls for appended lines until its context
// ends. Filter understands both log formats written by internal/logging so the
// CLI can narrow output by level or substring.
package logs
