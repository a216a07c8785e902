package chronotext

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// The natural-language stage is isolated behind resolveNatural so the
// underlying grammar engine stays swappable without touching the
// precision/era/approximation logic layered above it.

var naturalParser = newNaturalParser()

func newNaturalParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

var (
	clockRe = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\b|\b\d{1,2}\s*(?:am|pm)\b|\bnoon\b|\bmidnight\b`)

	rangeRe = regexp.MustCompile(`(?i)\b(this|next|last)?\s*(weekend|week|month)\b`)

	weekdayRe = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

// resolveNatural resolves a relative or absolute natural-language phrase
// against an explicit reference anchor. Range phrases ("next weekend")
// produce both a start and an end. A zero reference disables the stage:
// there is no implicit global clock to fall back on.
func resolveNatural(text string, ref time.Time, forward bool) (time.Time, *time.Time, bool) {
	if ref.IsZero() {
		return time.Time{}, nil, false
	}

	if start, end, ok := resolveRangePhrase(text, ref, forward); ok {
		return start, &end, true
	}

	result, err := naturalParser.Parse(text, ref)
	if err != nil || result == nil {
		return time.Time{}, nil, false
	}

	start := result.Time
	if forward && start.Before(ref) && weekdayRe.MatchString(text) {
		// Ambiguous weekday phrases bias toward the future when asked.
		start = start.AddDate(0, 0, 7)
	}

	return start, nil, true
}

// resolveRangePhrase handles weekend/week/month phrases, which span an
// interval rather than a single instant.
func resolveRangePhrase(text string, ref time.Time, forward bool) (time.Time, time.Time, bool) {
	m := rangeRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}

	modifier := strings.ToLower(m[1])
	unit := strings.ToLower(m[2])
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	switch unit {
	case "weekend":
		start := day.AddDate(0, 0, int(time.Saturday-day.Weekday()+7)%7)
		switch modifier {
		case "next":
			start = start.AddDate(0, 0, 7)
		case "last":
			start = start.AddDate(0, 0, -7)
		default:
			if forward && start.Before(ref) {
				start = start.AddDate(0, 0, 7)
			}
		}
		return start, endOfDay(start.AddDate(0, 0, 1)), true

	case "week":
		// Weeks run Monday through Sunday.
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		switch modifier {
		case "next":
			start = start.AddDate(0, 0, 7)
		case "last":
			start = start.AddDate(0, 0, -7)
		}
		return start, endOfDay(start.AddDate(0, 0, 6)), true

	case "month":
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		switch modifier {
		case "next":
			start = start.AddDate(0, 1, 0)
		case "last":
			start = start.AddDate(0, -1, 0)
		}
		return start, endOfDay(start.AddDate(0, 1, -1)), true
	}

	return time.Time{}, time.Time{}, false
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
