package timeline

import (
	"strings"
	"testing"
)

func TestDeathConflict_EventsAfterDeath(t *testing.T) {
	events := []Event{
		{ID: "d1", Name: "Bob dies", DateTime: "100-01-01", Characters: []string{"Bob"}},
		{ID: "m1", Name: "Bob visits market", DateTime: "100-06-01", Characters: []string{"Bob"}},
	}
	characters := []Character{{ID: "c1", Name: "Bob", Status: "deceased"}}

	conflicts := newTestDetector().DetectConflicts(events, characters, nil, nil)
	if len(conflicts) != 1 {
		t.Fatalf("Expected exactly one conflict, got %d", len(conflicts))
	}

	c := conflicts[0]
	if c.Type != ConflictTypeDeath {
		t.Errorf("Expected death conflict, got %q", c.Type)
	}
	if c.Severity != SeverityCritical {
		t.Errorf("Expected critical severity, got %q", c.Severity)
	}
	if !containsString(c.Events, "d1") || !containsString(c.Events, "m1") {
		t.Errorf("Expected conflict to reference both events, got %v", c.Events)
	}
	if !strings.Contains(c.Description, "Bob") {
		t.Errorf("Expected description to name the character, got %q", c.Description)
	}
}

func TestDeathConflict_StatusCaseInsensitive(t *testing.T) {
	events := []Event{
		{Name: "The killing of Rolf", DateTime: "2020-01-01", Characters: []string{"Rolf"}, Description: "Rolf is killed in battle"},
		{Name: "Feast", DateTime: "2021-01-01", Characters: []string{"Rolf"}},
	}
	for _, status := range []string{"Deceased", "DEAD", "dead"} {
		conflicts := newTestDetector().DetectConflicts(events, []Character{{Name: "Rolf", Status: status}}, nil, nil)
		if len(conflicts) != 1 {
			t.Errorf("Status %q: expected one conflict, got %d", status, len(conflicts))
		}
	}
}

func TestDeathConflict_FirstMatchInInputOrderIsCanonical(t *testing.T) {
	// The later-written death event is the keyword match that comes first in
	// input order, even though it is chronologically later.
	events := []Event{
		{ID: "d-late", Name: "Greta dies at the gate", DateTime: "1200-05-01", Characters: []string{"Greta"}},
		{ID: "d-early", Name: "Rumor of Greta's death", DateTime: "1200-01-01", Characters: []string{"Greta"}},
		{ID: "after", Name: "Greta's ghost walks", DateTime: "1200-06-01", Characters: []string{"Greta"}},
	}
	conflicts := newTestDetector().DetectConflicts(events, []Character{{Name: "Greta", Status: "deceased"}}, nil, nil)
	if len(conflicts) != 1 {
		t.Fatalf("Expected one conflict, got %d", len(conflicts))
	}
	c := conflicts[0]
	if c.Events[0] != "d-late" {
		t.Errorf("Expected canonical death event d-late, got %v", c.Events)
	}
	if containsString(c.Events, "d-early") {
		t.Errorf("Expected the earlier event not to be flagged, got %v", c.Events)
	}
}

func TestDeathConflict_UnparseableDeathDateSkipsCharacter(t *testing.T) {
	events := []Event{
		{Name: "Bob dies", DateTime: "someday", Characters: []string{"Bob"}},
		{Name: "Bob visits market", DateTime: "100-06-01", Characters: []string{"Bob"}},
	}
	conflicts := newTestDetector().DetectConflicts(events, []Character{{Name: "Bob", Status: "deceased"}}, nil, nil)
	if len(conflicts) != 0 {
		t.Fatalf("Expected character skipped when death date is unparseable, got %d", len(conflicts))
	}
}

func TestDeathConflict_LivingCharacterIgnored(t *testing.T) {
	events := []Event{
		{Name: "Bob dies in a dream", DateTime: "100-01-01", Characters: []string{"Bob"}},
		{Name: "Bob visits market", DateTime: "100-06-01", Characters: []string{"Bob"}},
	}
	conflicts := newTestDetector().DetectConflicts(events, []Character{{Name: "Bob", Status: "alive"}}, nil, nil)
	if len(conflicts) != 0 {
		t.Fatalf("Expected no conflict for a living character, got %d", len(conflicts))
	}
}
