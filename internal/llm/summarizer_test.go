package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lorecheck/lorecheck/internal/report"
	"github.com/lorecheck/lorecheck/timeline"
)

// MockProvider implements Provider for testing.
type MockProvider struct {
	name      string
	summary   string
	err       error
	available bool
	lastReq   SummarizeRequest
}

func (m *MockProvider) Name() string { return m.name }

func (m *MockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &SummarizeResponse{Summary: m.summary, Model: "mock-model"}, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool { return m.available }

func testReport() *report.Report {
	return report.Build("saga.yaml", "Test Saga", 3, 1, 1, []timeline.TimelineConflict{
		{
			ID:          "death-bob-abc12345",
			Type:        timeline.ConflictTypeDeath,
			Severity:    timeline.SeverityCritical,
			Description: "Character \"Bob\" appears after death",
		},
	})
}

func TestSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.IsEnabled() {
		t.Error("Expected summarizer disabled with empty provider")
	}
	if s.ProviderName() != "" {
		t.Errorf("Expected empty provider name, got %q", s.ProviderName())
	}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Errorf("Expected no error when disabled, got %v", err)
	}
	if summary != nil {
		t.Error("Expected nil summary when disabled")
	}
}

func TestSummarizer_GenerateSummary(t *testing.T) {
	mock := &MockProvider{name: "mock", summary: "One death conflict was found.", available: true}
	s := &Summarizer{provider: mock, config: Config{Model: "mock-model", MaxTokens: 500}}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary == nil || !summary.Enabled {
		t.Fatal("Expected enabled summary")
	}
	if summary.Provider != "mock" || summary.Model != "mock-model" {
		t.Errorf("Expected provider metadata, got %q/%q", summary.Provider, summary.Model)
	}
	if summary.SummaryMD != "One death conflict was found." {
		t.Errorf("Unexpected summary text: %q", summary.SummaryMD)
	}
	if mock.lastReq.MaxTokens != 500 {
		t.Errorf("Expected MaxTokens passed through, got %d", mock.lastReq.MaxTokens)
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", summary.Warnings)
	}
}

func TestSummarizer_ProviderUnavailable(t *testing.T) {
	mock := &MockProvider{name: "mock", available: false}
	s := &Summarizer{provider: mock}

	if _, err := s.GenerateSummary(context.Background(), testReport()); err == nil {
		t.Error("Expected error when provider is unavailable")
	}
}

func TestSummarizer_ProviderError(t *testing.T) {
	mock := &MockProvider{name: "mock", err: errors.New("api down"), available: true}
	s := &Summarizer{provider: mock}

	if _, err := s.GenerateSummary(context.Background(), testReport()); err == nil {
		t.Error("Expected wrapped provider error")
	}
}

func TestSummarizer_WarnsOnInventedConflicts(t *testing.T) {
	mock := &MockProvider{name: "mock", summary: "There is also an age conflict here.", available: true}
	s := &Summarizer{provider: mock}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("Expected one warning for invented conflict kind, got %v", summary.Warnings)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "claude"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewProvider_EmptyDisables(t *testing.T) {
	p, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if p != nil {
		t.Error("Expected nil provider for empty config")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testReport())

	if !strings.Contains(prompt, "Do not invent") {
		t.Error("Expected restate-only rule in prompt")
	}
	if !strings.Contains(prompt, "appears after death") {
		t.Error("Expected conflict description in prompt")
	}
	if !strings.Contains(prompt, "saga.yaml") {
		t.Error("Expected source in prompt")
	}
}

func TestBuildPrompt_CapsConflictList(t *testing.T) {
	conflicts := make([]timeline.TimelineConflict, 15)
	for i := range conflicts {
		conflicts[i] = timeline.TimelineConflict{
			Type:        timeline.ConflictTypeLocation,
			Severity:    timeline.SeverityCritical,
			Description: "dup",
		}
	}
	prompt := BuildPrompt(report.Build("s.yaml", "", 15, 1, 1, conflicts))

	if !strings.Contains(prompt, "(5 more omitted)") {
		t.Error("Expected conflict list capped at 10 entries")
	}
	if strings.Count(prompt, "- [location/critical]") != 10 {
		t.Errorf("Expected 10 listed conflicts, got %d", strings.Count(prompt, "- [location/critical]"))
	}
}
