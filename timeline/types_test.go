package timeline

import (
	"strings"
	"testing"
)

func TestSeverityDescription(t *testing.T) {
	tests := []struct {
		severity Severity
		contains string
	}{
		{SeverityCritical, "Critical"},
		{SeverityWarning, "Warning"},
		{SeverityInfo, "Info"},
		{Severity("bogus"), "Unknown"},
	}
	for _, tt := range tests {
		got := SeverityDescription(tt.severity)
		if got == "" {
			t.Errorf("SeverityDescription(%q): expected non-empty", tt.severity)
		}
		if !strings.Contains(got, tt.contains) {
			t.Errorf("SeverityDescription(%q) = %q, expected to contain %q", tt.severity, got, tt.contains)
		}
	}
}

func TestConflictIcon(t *testing.T) {
	known := []ConflictType{ConflictTypeLocation, ConflictTypeDeath, ConflictTypeAge, ConflictTypeCausality}
	seen := map[string]bool{}
	for _, ct := range known {
		icon := ConflictIcon(ct)
		if icon == "" {
			t.Errorf("ConflictIcon(%q): expected a glyph", ct)
		}
		seen[icon] = true
	}
	if len(seen) != len(known) {
		t.Error("Expected distinct glyphs per conflict type")
	}
	if ConflictIcon(ConflictType("bogus")) == "" {
		t.Error("Expected a default glyph for unknown types")
	}
}

func TestEventKey(t *testing.T) {
	if got := (Event{ID: "e1", Name: "Feast"}).Key(); got != "e1" {
		t.Errorf("Expected id preferred, got %q", got)
	}
	if got := (Event{Name: "Feast"}).Key(); got != "Feast" {
		t.Errorf("Expected name fallback, got %q", got)
	}
}
