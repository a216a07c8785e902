// Package report renders detection results as JSON and Markdown.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lorecheck/lorecheck/timeline"
)

// Report is a complete consistency-check result for one timeline document.
type Report struct {
	Source     string                      `json:"source"`
	Title      string                      `json:"title,omitempty"`
	CheckedAt  time.Time                   `json:"checked_at"`
	Events     int                         `json:"events"`
	Characters int                         `json:"characters"`
	Locations  int                         `json:"locations"`
	Conflicts  []timeline.TimelineConflict `json:"conflicts"`
	Summary    Summary                     `json:"summary"`
	LLM        *LLMSummary                 `json:"llm,omitempty"`
}

// Summary aggregates conflict counts for quick scanning.
type Summary struct {
	Total      int            `json:"total"`
	Critical   int            `json:"critical"`
	BySeverity map[string]int `json:"by_severity"`
	ByType     map[string]int `json:"by_type"`
}

// LLMSummary is an optional prose summary of the conflicts. It never
// affects detection output and is clearly separated from it.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Build assembles a report from a detection pass.
func Build(source, title string, events, characters, locations int, conflicts []timeline.TimelineConflict) *Report {
	summary := Summary{
		Total:      len(conflicts),
		BySeverity: make(map[string]int),
		ByType:     make(map[string]int),
	}
	for _, c := range conflicts {
		summary.BySeverity[string(c.Severity)]++
		summary.ByType[string(c.Type)]++
		if c.Severity == timeline.SeverityCritical {
			summary.Critical++
		}
	}

	return &Report{
		Source:     source,
		Title:      title,
		CheckedAt:  time.Now().UTC(),
		Events:     events,
		Characters: characters,
		Locations:  locations,
		Conflicts:  conflicts,
		Summary:    summary,
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown renders the report as a Markdown document.
func (r *Report) RenderMarkdown(includeFooter bool) string {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = r.Source
	}
	fmt.Fprintf(&b, "# Timeline Check: %s\n\n", title)
	fmt.Fprintf(&b, "- Checked: %s\n", r.CheckedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Events: %d, Characters: %d, Locations: %d\n", r.Events, r.Characters, r.Locations)
	fmt.Fprintf(&b, "- Conflicts: %d (%d critical)\n\n", r.Summary.Total, r.Summary.Critical)

	if len(r.Conflicts) == 0 {
		b.WriteString("No conflicts detected.\n")
	} else {
		b.WriteString("## Conflicts\n\n")
		for _, c := range r.Conflicts {
			fmt.Fprintf(&b, "### %s %s `%s`\n\n", timeline.ConflictIcon(c.Type), titleCase(string(c.Type)), c.ID)
			fmt.Fprintf(&b, "- Severity: %s\n", timeline.SeverityDescription(c.Severity))
			fmt.Fprintf(&b, "- %s\n", c.Description)
			if c.Suggestion != "" {
				fmt.Fprintf(&b, "- Suggestion: %s\n", c.Suggestion)
			}
			if len(c.Events) > 0 {
				fmt.Fprintf(&b, "- Events: %s\n", strings.Join(c.Events, ", "))
			}
			b.WriteString("\n")
		}

		b.WriteString("## Breakdown\n\n")
		for _, line := range sortedCounts(r.Summary.ByType) {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if r.LLM != nil && r.LLM.Enabled && r.LLM.SummaryMD != "" {
		b.WriteString("## Summary (LLM-generated, informational only)\n\n")
		b.WriteString(r.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if includeFooter {
		b.WriteString("---\n\nGenerated by lorecheck.\n")
	}

	return b.String()
}

// WriteMarkdown writes the Markdown rendering to disk.
func (r *Report) WriteMarkdown(path string, includeFooter bool) error {
	if err := os.WriteFile(path, []byte(r.RenderMarkdown(includeFooter)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortedCounts(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d", k, counts[k]))
	}
	return lines
}
