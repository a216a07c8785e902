// Package timeline runs deterministic, side-effect-free consistency checks
// over a narrative event/character/location graph and reports conflicts.
package timeline

// Event is a narrative event as authored. DateTime is the raw date
// expression exactly as written; it is parsed, never rewritten.
type Event struct {
	ID           string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string   `json:"name" yaml:"name"`
	DateTime     string   `json:"dateTime,omitempty" yaml:"date,omitempty"`
	Characters   []string `json:"characters,omitempty" yaml:"characters,omitempty"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	IsMilestone  bool     `json:"isMilestone,omitempty" yaml:"milestone,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Key returns the identifier used for cross-referencing: the id when
// present, otherwise the name.
func (e Event) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Name
}

// Character is a narrative character. Status is checked case-insensitively
// against "deceased"/"dead" by the death detector.
type Character struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// Location is used only as a label for conflict reporting.
type Location struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// CausalityLink is an explicit author-declared cause->effect relationship,
// distinct from an event's own dependency list.
type CausalityLink struct {
	ID          string `json:"id" yaml:"id"`
	CauseEvent  string `json:"causeEvent" yaml:"cause"`
	EffectEvent string `json:"effectEvent" yaml:"effect"`
}

// ConflictType classifies a detected inconsistency.
type ConflictType string

const (
	ConflictTypeLocation  ConflictType = "location"
	ConflictTypeDeath     ConflictType = "death"
	ConflictTypeAge       ConflictType = "age"
	ConflictTypeCausality ConflictType = "causality"
)

// Severity indicates how serious a conflict is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// ConflictEntity names one entity implicated in a conflict, with the field
// and value that triggered it.
type ConflictEntity struct {
	EntityID      string `json:"entityId,omitempty"`
	EntityType    string `json:"entityType"`
	EntityName    string `json:"entityName"`
	ConflictField string `json:"conflictField,omitempty"`
	ConflictValue string `json:"conflictValue,omitempty"`
}

// TimelineConflict is a detected narrative inconsistency. Ids embed a
// per-run uniqueness token and are NOT stable across repeated detection:
// callers replace, never merge, their stored conflict set after a rescan.
type TimelineConflict struct {
	ID          string           `json:"id"`
	Type        ConflictType     `json:"type"`
	Severity    Severity         `json:"severity"`
	Entities    []ConflictEntity `json:"entities"`
	Events      []string         `json:"events"`
	Description string           `json:"description"`
	Suggestion  string           `json:"suggestion"`
	Dismissed   bool             `json:"dismissed"`
	Detected    string           `json:"detected"`
}

// SeverityDescription returns a human-readable description of a severity
// level for presentation layers.
func SeverityDescription(s Severity) string {
	switch s {
	case SeverityCritical:
		return "Critical - breaks timeline consistency"
	case SeverityWarning:
		return "Warning - likely inconsistency, review recommended"
	case SeverityInfo:
		return "Info - worth a look"
	default:
		return "Unknown severity"
	}
}

// ConflictIcon returns an icon glyph for a conflict type.
func ConflictIcon(t ConflictType) string {
	switch t {
	case ConflictTypeLocation:
		return "📍"
	case ConflictTypeDeath:
		return "💀"
	case ConflictTypeAge:
		return "⏳"
	case ConflictTypeCausality:
		return "🔗"
	default:
		return "⚠️"
	}
}
