package duration

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abema/go-mp4"
	"github.com/go-audio/wav"

	"scenarr/internal/media/ffprobe"
)

var errInvalidDuration = errors.New("invalid duration")

// ParseMP4 reads the movie header of an ISO base media file (mp4, m4v, mov).
func ParseMP4(_ context.Context, path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	info, err := mp4.Probe(file)
	if err != nil {
		return 0, fmt.Errorf("mp4 probe: %w", err)
	}
	if info.Timescale == 0 {
		return 0, errors.New("mp4 probe: movie header has zero timescale")
	}
	return float64(info.Duration) / float64(info.Timescale), nil
}

// ParseWAV reads the RIFF header and data chunk size of a WAV file.
func ParseWAV(_ context.Context, path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return 0, errors.New("wav: invalid file")
	}
	d, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("wav duration: %w", err)
	}
	return d.Seconds(), nil
}

// FFprobeParser delegates to the ffprobe binary.
func FFprobeParser(binary string) ParseFunc {
	return func(ctx context.Context, path string) (float64, error) {
		format, err := ffprobe.Inspect(ctx, binary, path)
		if err != nil {
			return 0, err
		}
		return format.DurationSeconds()
	}
}
