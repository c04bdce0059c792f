package duration

import "fmt"

// Result is the outcome of probing one file. The zero value is Unknown.
type Result struct {
	minutes float64
	known   bool
	format  string
}

// Unknown reports a duration that could not be determined.
func Unknown() Result {
	return Result{}
}

// FromSeconds builds a known Result from a duration in seconds.
func FromSeconds(seconds float64, format string) Result {
	return Result{minutes: seconds / 60, known: true, format: format}
}

// Known reports whether a duration was extracted.
func (r Result) Known() bool {
	return r.known
}

// Minutes returns the duration in minutes, or 0 when unknown.
func (r Result) Minutes() float64 {
	if !r.known {
		return 0
	}
	return r.minutes
}

// Format names the parser that produced the value ("mp4", "wav", "ffprobe").
func (r Result) Format() string {
	return r.format
}

func (r Result) String() string {
	if !r.known {
		return "unknown"
	}
	return fmt.Sprintf("%.2fm (%s)", r.minutes, r.format)
}
