package matching

import (
	"strconv"
	"strings"
	"time"

	"scenarr/internal/textutil"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// dateForms returns the normalized strings a release name may use for a
// full date: the date text itself, plus yyyymmdd and yymmdd when it parses.
// The parsed year is returned separately; it is zero when nothing parsed.
func dateForms(date string) ([]string, int) {
	date = strings.TrimSpace(date)
	forms := []string{textutil.Normalize(date)}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		return append(forms, parsed.Format("20060102"), parsed.Format("060102")), parsed.Year()
	}
	return forms, 0
}

// dateScore is the best partial ratio of any full date form against name.
// The bare year is only tried when no full form reaches tolerance, so a name
// carrying only the year can still score 100 for any date in that year.
func dateScore(date, name string, tolerance int) int {
	forms, year := dateForms(date)
	best := 0
	for _, form := range forms {
		if score := textutil.PartialRatio(form, name); score > best {
			best = score
		}
	}
	if best >= tolerance || year == 0 {
		return best
	}
	if score := textutil.PartialRatio(strconv.Itoa(year), name); score > best {
		best = score
	}
	return best
}
