// Package loader reads timeline documents from YAML files.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lorecheck/lorecheck/timeline"
)

// Document is a timeline file: the event/character/location graph plus
// explicit causality links, exactly the collections the detector consumes.
type Document struct {
	Title      string                   `yaml:"title,omitempty"`
	Events     []timeline.Event         `yaml:"events"`
	Characters []timeline.Character     `yaml:"characters"`
	Locations  []timeline.Location      `yaml:"locations"`
	Causality  []timeline.CausalityLink `yaml:"causality,omitempty"`
}

// Load reads and parses a timeline document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeline file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a timeline document from YAML bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	for i, ev := range doc.Events {
		if ev.Name == "" && ev.ID == "" {
			return nil, fmt.Errorf("event %d has neither id nor name", i)
		}
	}
	return &doc, nil
}
