package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// nonWordPattern matches anything that is not an ASCII word character or whitespace.
var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// Normalize canonicalizes text for fuzzy comparison. Accents are folded to
// their base letters, every rune that is not a word character or whitespace
// is removed, whitespace runes become plain spaces, and the result is
// lower-cased. Normalize is idempotent.
func Normalize(value string) string {
	if value == "" {
		return ""
	}
	folded := foldMarks(value)
	stripped := nonWordPattern.ReplaceAllString(folded, "")
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func foldMarks(value string) string {
	decomposed := norm.NFKD.String(value)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
