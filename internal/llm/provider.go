// Package llm generates optional prose summaries of conflict reports.
// Summaries are informational only: they never affect detection output.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorecheck/lorecheck/internal/config"
	"github.com/lorecheck/lorecheck/internal/report"
	"github.com/lorecheck/lorecheck/timeline"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a prose summary of a conflict report.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for summarization.
type SummarizeRequest struct {
	// Report is the finished conflict report to summarize.
	Report *report.Report

	// Prompt is an optional custom prompt (if empty, BuildPrompt is used).
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse contains the provider's output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	Provider  string // "openai", "ollama", ""
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// ConfigFrom converts the application LLM config.
func ConfigFrom(c config.LLMConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}

// BuildPrompt constructs the default summarization prompt. The model is
// told to restate detected conflicts, never to invent new ones.
func BuildPrompt(r *report.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing a narrative timeline consistency report for a fiction writer.

RULES:
1. Only describe conflicts listed below. Do not invent, infer, or speculate about others.
2. Do not judge the story. Describe the inconsistencies and the suggested fixes.
3. Keep it to 3-5 sentences, plain prose.

Timeline: %s
Events checked: %d
Conflicts found: %d (%d critical)

Conflicts:
`, r.Source, r.Events, r.Summary.Total, r.Summary.Critical)

	for i, c := range r.Conflicts {
		if i >= 10 {
			fmt.Fprintf(&b, "- (%d more omitted)\n", len(r.Conflicts)-i)
			break
		}
		fmt.Fprintf(&b, "- [%s/%s] %s\n", c.Type, c.Severity, c.Description)
	}

	if r.Summary.Total == 0 {
		b.WriteString("- none\n")
	}

	return b.String()
}

// mentionsUnknownConflicts flags summaries that reference conflict kinds the
// report does not contain; the warning travels with the summary.
func mentionsUnknownConflicts(summary string, r *report.Report) []string {
	var warnings []string
	lower := strings.ToLower(summary)
	for _, kind := range []timeline.ConflictType{timeline.ConflictTypeLocation, timeline.ConflictTypeDeath, timeline.ConflictTypeAge, timeline.ConflictTypeCausality} {
		if r.Summary.ByType[string(kind)] == 0 && strings.Contains(lower, string(kind)+" conflict") {
			warnings = append(warnings, fmt.Sprintf("summary mentions %s conflicts the report does not contain", kind))
		}
	}
	return warnings
}
