package chronotext

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// eraMatch is the result of the independent era marker scan.
type eraMatch struct {
	year   int  // literal author-written year, always positive
	bce    bool // true for BCE/BC markers
	marker string
	token  string // full matched token including the year
}

var (
	// Year followed by a BCE marker: "500 BCE", "44 BC", "12 B.C.E."
	bceRe = regexp.MustCompile(`(?i)\b(\d{1,5})\s*(B\.C\.E\.|B\.C\.|BCE|BC)(?:\b|$)`)

	// Year followed by a CE marker: "500 CE", "79 AD", "79 A.D."
	ceRe = regexp.MustCompile(`(?i)\b(\d{1,5})\s*(C\.E\.|A\.D\.|CE|AD)(?:\b|$)`)

	// Marker preceding the year: "AD 79", "CE 500"
	cePrefixRe = regexp.MustCompile(`(?i)\b(C\.E\.|A\.D\.|CE|AD)\s*(\d{1,5})\b`)
)

// scanEra scans the whole input for a BCE/CE marker attached to a bare year.
// The scan is case-insensitive and independent of the parse pipeline.
func scanEra(text string) (eraMatch, bool) {
	if m := bceRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		return eraMatch{year: year, bce: true, marker: m[2], token: m[0]}, true
	}
	if m := ceRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		return eraMatch{year: year, marker: m[2], token: m[0]}, true
	}
	if m := cePrefixRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[2])
		return eraMatch{year: year, marker: m[1], token: m[0]}, true
	}
	return eraMatch{}, false
}

// parseWithEra resolves an expression carrying an era marker. The marker is
// stripped and the remainder re-run through the pipeline; a recovered
// month/day composes with the era year. BCE years convert to astronomical
// numbering (1 BCE -> 0, 100 BCE -> -99) so BCE instants order strictly
// before CE instants without a year-zero discontinuity.
func parseWithEra(text string, era eraMatch, loc *time.Location, opts Options) ParsedDate {
	year := era.year
	if era.bce {
		year = 1 - era.year
	}

	remainder := strings.Replace(text, era.token, strconv.Itoa(era.year), 1)
	// Qualifier tokens are noise to the calendar stages.
	remainder = approxRe.ReplaceAllString(remainder, "")
	remainder = strings.Trim(strings.TrimSpace(remainder), " ,")

	pd := ParsedDate{IsBCE: era.bce}
	if era.bce {
		pd.OriginalYear = era.year
	}

	if inner, ok := runPipeline(remainder, loc, opts); ok && inner.Start != nil {
		s := *inner.Start
		// The era year overrides whatever year the pipeline guessed; the
		// explicitly stated month/day/time fields carry over.
		composed := time.Date(year, s.Month(), s.Day(), s.Hour(), s.Minute(), s.Second(), 0, s.Location())
		pd.Start = &composed
		pd.Precision = inner.Precision
		return pd
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	pd.Start = &start
	pd.Precision = PrecisionYear
	return pd
}
