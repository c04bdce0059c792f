package matching

import (
	"math"

	"scenarr/internal/media/duration"
)

// DurationMatchScore is attached to candidates whose durations agree.
const DurationMatchScore = 100

// durationWindow is the exclusive bound, in minutes, for a duration match.
const durationWindow = 1.0

// DurationMatches reports whether file and entry durations are both known and
// differ by strictly less than one minute.
func DurationMatches(file duration.Result, entry *float64) bool {
	if entry == nil || !file.Known() {
		return false
	}
	return math.Abs(file.Minutes()-*entry) < durationWindow
}

// DurationScore returns DurationMatchScore when the durations match, nil otherwise.
func DurationScore(file duration.Result, entry *float64) *int {
	if !DurationMatches(file, entry) {
		return nil
	}
	score := DurationMatchScore
	return &score
}
