package llm

import (
	"context"
	"fmt"

	"github.com/lorecheck/lorecheck/internal/report"
)

// Summarizer wraps an optional provider. A nil provider means summaries are
// disabled and GenerateSummary returns nothing.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled.
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces a prose summary of the report. Returns nil when
// disabled. The summary is attached by the caller; detection output is
// never modified here.
func (s *Summarizer) GenerateSummary(ctx context.Context, r *report.Report) (*report.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return nil, fmt.Errorf("LLM provider %s is not available", s.provider.Name())
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    r,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	return &report.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
		Warnings:  mentionsUnknownConflicts(resp.Summary, r),
	}, nil
}
