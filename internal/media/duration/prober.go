package duration

import (
	"context"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"scenarr/internal/logging"
)

// ParseFunc extracts a duration in seconds from the file at path.
type ParseFunc func(ctx context.Context, path string) (float64, error)

// Option configures a Prober.
type Option func(*Prober)

// WithLogger routes probe diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logging.NewComponentLogger(logger, "probe")
	}
}

// WithTimeout bounds each parse call. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		p.timeout = timeout
	}
}

// WithFFprobeFallback registers ffprobe for containers without a native parser.
func WithFFprobeFallback(binary string) Option {
	return func(p *Prober) {
		fn := FFprobeParser(binary)
		for _, ext := range ffprobeExtensions {
			p.parsers[ext] = registered{name: "ffprobe", fn: fn}
		}
	}
}

// ffprobeExtensions lists containers handed to ffprobe when the fallback is enabled.
var ffprobeExtensions = []string{".mkv", ".avi", ".wmv", ".webm", ".flv", ".ts", ".mpg", ".mpeg", ".m2ts"}

type registered struct {
	name string
	fn   ParseFunc
}

// Prober maps file extensions to container parsers.
type Prober struct {
	mu      sync.RWMutex
	parsers map[string]registered
	logger  *slog.Logger
	timeout time.Duration
}

// NewProber returns a Prober with the native MP4 and WAV parsers registered.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		parsers: make(map[string]registered),
		logger:  logging.NewNop(),
	}
	for _, ext := range []string{".mp4", ".m4v", ".mov"} {
		p.parsers[ext] = registered{name: "mp4", fn: ParseMP4}
	}
	p.parsers[".wav"] = registered{name: "wav", fn: ParseWAV}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register installs fn for ext, replacing any existing parser. The extension
// may be given with or without its leading dot.
func (p *Prober) Register(ext, name string, fn ParseFunc) {
	ext = canonicalExt(ext)
	if ext == "" || fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parsers[ext] = registered{name: name, fn: fn}
}

// Supports reports whether a parser is registered for the file's extension.
func (p *Prober) Supports(path string) bool {
	_, ok := p.lookup(path)
	return ok
}

// Probe returns the duration of the file at path. Unrecognized extensions and
// parse failures yield Unknown; failures are logged, never returned.
func (p *Prober) Probe(ctx context.Context, path string) Result {
	parser, ok := p.lookup(path)
	if !ok {
		p.logger.Debug("no duration parser for extension", logging.String(logging.FieldPath, path))
		return Unknown()
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	seconds, err := parser.fn(ctx, path)
	if err == nil && (math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0) {
		err = errInvalidDuration
	}
	if err != nil {
		logging.WarnWithContext(p.logger, "duration probe failed", "probe_failed",
			logging.String(logging.FieldPath, path),
			logging.String("format", parser.name),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "file may be corrupt, truncated, or use an unsupported codec"),
			logging.String(logging.FieldImpact, "duration signal skipped for this file"),
		)
		return Unknown()
	}
	return FromSeconds(seconds, parser.name)
}

func (p *Prober) lookup(path string) (registered, bool) {
	ext := canonicalExt(filepath.Ext(path))
	if ext == "" {
		return registered{}, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	parser, ok := p.parsers[ext]
	return parser, ok
}

func canonicalExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
