package loader

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `
title: Test Saga
events:
  - id: e1
    name: Bob dies
    date: "100-01-01"
    characters: [Bob]
  - id: e2
    name: Bob visits market
    date: "100-06-01"
    characters: [Bob]
    location: Market
    dependencies: [e1]
characters:
  - id: c1
    name: Bob
    status: deceased
locations:
  - id: l1
    name: Market
causality:
  - id: cl1
    cause: e1
    effect: e2
`

func TestParse_Document(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if doc.Title != "Test Saga" {
		t.Errorf("Expected title, got %q", doc.Title)
	}
	if len(doc.Events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(doc.Events))
	}
	if doc.Events[0].DateTime != "100-01-01" {
		t.Errorf("Expected raw date expression preserved, got %q", doc.Events[0].DateTime)
	}
	if len(doc.Events[1].Dependencies) != 1 || doc.Events[1].Dependencies[0] != "e1" {
		t.Errorf("Expected dependency e1, got %v", doc.Events[1].Dependencies)
	}
	if len(doc.Characters) != 1 || doc.Characters[0].Status != "deceased" {
		t.Errorf("Expected deceased Bob, got %+v", doc.Characters)
	}
	if len(doc.Causality) != 1 || doc.Causality[0].CauseEvent != "e1" {
		t.Errorf("Expected causality link, got %+v", doc.Causality)
	}
}

func TestParse_EventWithoutIdentity(t *testing.T) {
	_, err := Parse([]byte("events:\n  - date: \"2024-01-01\"\n"))
	if err == nil {
		t.Fatal("Expected error for event with neither id nor name")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("events: [unclosed"))
	if err == nil {
		t.Fatal("Expected error for invalid yaml")
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saga.yaml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(doc.Events) != 2 {
		t.Errorf("Expected 2 events, got %d", len(doc.Events))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
