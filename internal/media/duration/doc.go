// Package duration probes playable media durations from files on disk.
//
// A Prober dispatches on the lower-cased file extension to a registered
// ParseFunc. MP4-family containers are read natively from the movie header,
// WAV files through their RIFF header, and other containers can optionally
// be delegated to ffprobe. Every outcome is returned as a Result value:
// unknown extensions and parse failures degrade to Unknown instead of
// surfacing errors.
package duration
