package matching

import (
	"log/slog"

	"scenarr/internal/config"
	"scenarr/internal/media/duration"
)

// NewProber builds the duration prober described by cfg.
func NewProber(cfg *config.Config, logger *slog.Logger) *duration.Prober {
	opts := []duration.Option{
		duration.WithLogger(logger),
		duration.WithTimeout(cfg.ProbeTimeout()),
	}
	if cfg.Matching.FFprobeFallback {
		opts = append(opts, duration.WithFFprobeFallback(cfg.Matching.FFprobeBinary))
	}
	return duration.NewProber(opts...)
}

// OptionsFromConfig returns generator options for the configured worker count
// and prober.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) []Option {
	return []Option{
		WithLogger(logger),
		WithWorkers(cfg.MatchWorkers()),
		WithProber(NewProber(cfg, logger)),
	}
}
