// Package chronotext normalizes free-form narrative date expressions
// ("circa 500 BCE", "next Friday", ISO dates, bare years) into a single
// comparable representation.
package chronotext

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Precision is the finest granularity explicitly stated in the source text.
type Precision string

const (
	PrecisionYear  Precision = "year"
	PrecisionMonth Precision = "month"
	PrecisionDay   Precision = "day"
	PrecisionTime  Precision = "time"
)

// ErrorKind classifies a parse failure. Failures are returned as data,
// never as Go errors or panics.
type ErrorKind string

const (
	ErrorNone     ErrorKind = ""
	ErrorEmpty    ErrorKind = "empty"
	ErrorUnparsed ErrorKind = "unparsed"
)

// ParsedDate is the normalized output of parsing a date expression.
// Error and Start are mutually exclusive. When IsBCE is true, OriginalYear
// holds the literal author-written year and Start's internal year is
// 1 - OriginalYear (astronomical year numbering, no year-zero gap).
type ParsedDate struct {
	Start        *time.Time `json:"start,omitempty"`
	End          *time.Time `json:"end,omitempty"`
	Precision    Precision  `json:"precision,omitempty"`
	Approximate  bool       `json:"approximate"`
	IsBCE        bool       `json:"is_bce"`
	OriginalYear int        `json:"original_year,omitempty"`
	Error        ErrorKind  `json:"error,omitempty"`
}

// Valid reports whether the parse produced a usable instant.
func (p ParsedDate) Valid() bool {
	return p.Error == ErrorNone && p.Start != nil
}

// Options controls how an expression is resolved.
type Options struct {
	// ForwardDate biases ambiguous relative phrases toward the future.
	ForwardDate bool

	// Timezone is an IANA zone name for instants without an explicit offset.
	Timezone string

	// ReferenceDate anchors relative phrases ("tomorrow", "next Friday").
	// It is always an explicit parameter, never an implicit process clock;
	// when zero, the natural-language stage is skipped.
	ReferenceDate time.Time

	// Locale is a display hint only (see Display). It never affects parsing.
	Locale string
}

// approxRe matches author-signaled uncertainty qualifiers anywhere in the
// input, independent of which pipeline stage matches.
var approxRe = regexp.MustCompile(`(?i)\bcirca\b|\baround\b|\babout\b|\bapprox\.?|~`)

// strictRe is the strict calendar grammar: full ISO-style date with an
// optional time-of-day and offset.
var strictRe = regexp.MustCompile(`^(\d{1,4})-(\d{1,2})-(\d{1,2})(?:[T ](\d{1,2}):(\d{2})(?::(\d{2}))?\s*(Z|[+-]\d{2}:?\d{2})?)?$`)

var (
	yearMonthRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	bareYearRe  = regexp.MustCompile(`^\d{1,4}$`)
)

// adHocLayouts is the short list of literal formats tried last.
var adHocLayouts = []string{
	"Jan 02 2006",
	"Jan 2 2006",
	"January 02 2006",
	"January 2 2006",
}

// Parse converts a date expression into a ParsedDate. Resolution proceeds
// through an ordered, first-match-wins pipeline: strict calendar grammar,
// relaxed tabular grammar, natural-language resolution anchored at
// opts.ReferenceDate, then ad-hoc literal formats. Era and approximation
// markers are scanned independently of the pipeline.
func Parse(text string, opts Options) ParsedDate {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ParsedDate{Error: ErrorEmpty}
	}

	approx := approxRe.MatchString(text)
	loc := resolveLocation(opts)

	// The era scan's year resolution takes precedence over any year the
	// pipeline would find in the same string.
	if era, ok := scanEra(trimmed); ok {
		pd := parseWithEra(trimmed, era, loc, opts)
		pd.Approximate = approx
		return pd
	}

	if pd, ok := runPipeline(trimmed, loc, opts); ok {
		pd.Approximate = approx
		return pd
	}

	return ParsedDate{Error: ErrorUnparsed, Approximate: approx}
}

func resolveLocation(opts Options) *time.Location {
	if opts.Timezone != "" {
		if loc, err := time.LoadLocation(opts.Timezone); err == nil {
			return loc
		}
	}
	if !opts.ReferenceDate.IsZero() {
		return opts.ReferenceDate.Location()
	}
	return time.UTC
}

func runPipeline(text string, loc *time.Location, opts Options) (ParsedDate, bool) {
	if pd, ok := parseStrictCalendar(text, loc); ok {
		return pd, true
	}
	if pd, ok := parseTabular(text, loc); ok {
		return pd, true
	}
	if pd, ok := parseNaturalStage(text, opts); ok {
		return pd, true
	}
	return parseAdHoc(text, loc)
}

// parseStrictCalendar handles the strict calendar grammar. A hand-rolled
// field build is used instead of time.Parse so that years below 1000
// ("100-01-01") resolve without zero padding.
func parseStrictCalendar(text string, loc *time.Location) (ParsedDate, bool) {
	m := strictRe.FindStringSubmatch(text)
	if m == nil {
		return ParsedDate{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ParsedDate{}, false
	}

	precision := PrecisionDay
	hour, minute, second := 0, 0, 0
	if m[4] != "" {
		precision = PrecisionTime
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		if m[6] != "" {
			second, _ = strconv.Atoi(m[6])
		}
		if hour > 23 || minute > 59 || second > 59 {
			return ParsedDate{}, false
		}
		if m[7] != "" {
			loc = offsetLocation(m[7])
		}
	}

	start := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	return ParsedDate{Start: &start, Precision: precision}, true
}

func offsetLocation(offset string) *time.Location {
	if offset == "Z" {
		return time.UTC
	}
	sign := 1
	if offset[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(offset[1:], ":", "")
	hours, _ := strconv.Atoi(digits[:2])
	minutes, _ := strconv.Atoi(digits[2:])
	return time.FixedZone(offset, sign*(hours*3600+minutes*60))
}

// parseTabular is the relaxed tabular grammar stage. The matched layout is
// inspected so precision reflects only explicitly stated components.
func parseTabular(text string, loc *time.Location) (ParsedDate, bool) {
	layout, err := dateparse.ParseFormat(text)
	if err != nil {
		return ParsedDate{}, false
	}
	t, err := dateparse.ParseIn(text, loc)
	if err != nil {
		return ParsedDate{}, false
	}
	start := t
	return ParsedDate{Start: &start, Precision: precisionFromLayout(layout)}, true
}

// precisionFromLayout derives precision from a Go reference layout.
// Defaulted components (e.g. an implicit day-of-month) never appear in the
// layout, so they never upgrade precision.
func precisionFromLayout(layout string) Precision {
	rest := strings.ReplaceAll(layout, "2006", "")
	rest = strings.ReplaceAll(rest, "06", "")
	switch {
	case strings.Contains(rest, ":"):
		return PrecisionTime
	case strings.Contains(rest, "2"):
		return PrecisionDay
	case strings.Contains(rest, "1") || strings.Contains(rest, "Jan"):
		return PrecisionMonth
	default:
		return PrecisionYear
	}
}

func parseNaturalStage(text string, opts Options) (ParsedDate, bool) {
	start, end, ok := resolveNatural(text, opts.ReferenceDate, opts.ForwardDate)
	if !ok {
		return ParsedDate{}, false
	}
	precision := PrecisionDay
	if clockRe.MatchString(text) {
		precision = PrecisionTime
	}
	pd := ParsedDate{Start: &start, Precision: precision}
	if end != nil {
		pd.End = end
	}
	return pd, true
}

func parseAdHoc(text string, loc *time.Location) (ParsedDate, bool) {
	if m := yearMonthRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
			return ParsedDate{Start: &start, Precision: PrecisionMonth}, true
		}
	}

	if bareYearRe.MatchString(text) {
		year, _ := strconv.Atoi(text)
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return ParsedDate{Start: &start, Precision: PrecisionYear}, true
	}

	normalized := strings.ReplaceAll(text, ",", "")
	for _, layout := range adHocLayouts {
		if t, err := time.ParseInLocation(layout, normalized, loc); err == nil {
			start := t
			return ParsedDate{Start: &start, Precision: PrecisionDay}, true
		}
	}

	return ParsedDate{}, false
}
