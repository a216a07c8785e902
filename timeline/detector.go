package timeline

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lorecheck/lorecheck/chronotext"
)

// ParseFunc resolves a raw date expression. It matches chronotext.Parse and
// exists so callers can inject a memoizing wrapper.
type ParseFunc func(text string, opts chronotext.Options) chronotext.ParsedDate

// Detector runs consistency checks over in-memory collections. It never
// mutates its inputs and retains no state across calls; concurrent
// detection over disjoint snapshots is safe.
type Detector struct {
	opts  chronotext.Options
	parse ParseFunc
	now   func() time.Time
}

// Option customizes a Detector.
type Option func(*Detector)

// WithParseFunc replaces the date parser, e.g. with a cached one.
func WithParseFunc(fn ParseFunc) Option {
	return func(d *Detector) {
		if fn != nil {
			d.parse = fn
		}
	}
}

// WithClock replaces the timestamp source for the Detected field.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDetector creates a detector that resolves date expressions with the
// given options.
func NewDetector(opts chronotext.Options, options ...Option) *Detector {
	d := &Detector{
		opts:  opts,
		parse: chronotext.Parse,
		now:   time.Now,
	}
	for _, o := range options {
		o(d)
	}
	return d
}

// DetectConflicts runs the four sub-detectors in fixed order (location,
// death, age, causality) and concatenates their findings without
// cross-sorting. Only the Detected timestamps and the id uniqueness tokens
// vary between runs over identical input.
func (d *Detector) DetectConflicts(events []Event, characters []Character, locations []Location, links []CausalityLink) []TimelineConflict {
	run := d.newRun(events)

	conflicts := []TimelineConflict{}
	conflicts = append(conflicts, d.detectLocationConflicts(run, events, characters, locations)...)
	conflicts = append(conflicts, d.detectDeathConflicts(run, events, characters)...)
	conflicts = append(conflicts, d.detectAgeConflicts()...)
	conflicts = append(conflicts, d.detectCausalityConflicts(run, events, links)...)
	return conflicts
}

// runContext carries the per-run parse memo and event lookup tables. Each
// date expression is parsed at most once per detection pass.
type runContext struct {
	detector *Detector
	memo     map[string]chronotext.ParsedDate
	byKey    map[string]*Event
}

func (d *Detector) newRun(events []Event) *runContext {
	run := &runContext{
		detector: d,
		memo:     make(map[string]chronotext.ParsedDate),
		byKey:    make(map[string]*Event),
	}
	for i := range events {
		ev := &events[i]
		if ev.ID != "" {
			if _, exists := run.byKey[ev.ID]; !exists {
				run.byKey[ev.ID] = ev
			}
		}
		if ev.Name != "" {
			if _, exists := run.byKey[ev.Name]; !exists {
				run.byKey[ev.Name] = ev
			}
		}
	}
	return run
}

// lookup resolves an event reference by id or name.
func (r *runContext) lookup(ref string) (*Event, bool) {
	ev, ok := r.byKey[ref]
	return ev, ok
}

func (r *runContext) parsed(expr string) chronotext.ParsedDate {
	if pd, ok := r.memo[expr]; ok {
		return pd
	}
	pd := r.detector.parse(expr, r.detector.opts)
	r.memo[expr] = pd
	return pd
}

// startMillis returns the event's start instant. Unparseable or missing
// dates report ok=false and are silently skipped by callers: detection is
// best-effort, never aborted by a bad expression.
func (r *runContext) startMillis(ev *Event) (int64, bool) {
	if ev == nil || strings.TrimSpace(ev.DateTime) == "" {
		return 0, false
	}
	pd := r.parsed(ev.DateTime)
	if !pd.Valid() {
		return 0, false
	}
	return chronotext.Millis(*pd.Start), true
}

func (d *Detector) stamp() string {
	return d.now().UTC().Format(time.RFC3339)
}

// runToken is the per-run uniqueness fragment embedded in conflict ids.
func runToken() string {
	return uuid.NewString()[:8]
}

func slugify(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func characterID(characters []Character, name string) string {
	for _, c := range characters {
		if c.Name == name {
			return c.ID
		}
	}
	return ""
}

func locationID(locations []Location, name string) string {
	for _, l := range locations {
		if l.Name == name {
			return l.ID
		}
	}
	return ""
}
