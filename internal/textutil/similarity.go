package textutil

import (
	"math"

	"github.com/hbollon/go-edlib"
)

// MaxScore is the score of two identical non-empty strings.
const MaxScore = 100

// Ratio scores two strings by their indel similarity, 2*LCS/(len(a)+len(b)),
// scaled to 0-100. Either string empty yields 0.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	return toScore(indelRatio(ra, rb))
}

// PartialRatio scores how well the shorter string aligns with the best
// matching window of the longer one, so extra tokens on either side of a
// title (site prefixes, release tags, resolutions) do not lower the score.
// Windows are every same-length slice of the longer string plus its shorter
// prefixes and suffixes. The result does not depend on argument order.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	switch {
	case len(ra) < len(rb):
		return toScore(bestWindow(ra, rb))
	case len(ra) > len(rb):
		return toScore(bestWindow(rb, ra))
	default:
		return toScore(max(bestWindow(ra, rb), bestWindow(rb, ra)))
	}
}

// bestWindow returns the highest indel ratio of short against the windows of long.
func bestWindow(short, long []rune) float64 {
	size := len(short)
	best := 0.0
	consider := func(window []rune) bool {
		if ratio := indelRatio(short, window); ratio > best {
			best = ratio
		}
		return best >= 1
	}
	for start := 0; start+size <= len(long); start++ {
		if consider(long[start : start+size]) {
			return best
		}
	}
	for k := 1; k < size && k <= len(long); k++ {
		consider(long[:k])
		consider(long[len(long)-k:])
	}
	return best
}

func indelRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	common := edlib.LCS(string(a), string(b))
	return 2 * float64(common) / float64(total)
}

func toScore(ratio float64) int {
	score := int(math.Round(ratio * MaxScore))
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
