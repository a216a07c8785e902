package timeline

import (
	"fmt"
	"strings"
)

// detectLocationConflicts groups events by the exact literal date-expression
// string. Two events written as "2024-03-02" and "March 2, 2024" are never
// compared to each other here; semantic date equality would change
// detection sensitivity. Within each group, a character appearing in two or
// more distinct named locations yields one critical conflict.
func (d *Detector) detectLocationConflicts(run *runContext, events []Event, characters []Character, locations []Location) []TimelineConflict {
	groups := make(map[string][]*Event)
	var order []string

	for i := range events {
		ev := &events[i]
		if strings.TrimSpace(ev.DateTime) == "" || ev.Location == "" {
			continue
		}
		key := ev.DateTime
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], ev)
	}

	var conflicts []TimelineConflict
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		var charOrder []string
		charLocations := make(map[string][]string)
		charEvents := make(map[string][]*Event)

		for _, ev := range group {
			for _, name := range ev.Characters {
				if _, seen := charLocations[name]; !seen {
					charOrder = append(charOrder, name)
				}
				if !containsString(charLocations[name], ev.Location) {
					charLocations[name] = append(charLocations[name], ev.Location)
				}
				charEvents[name] = append(charEvents[name], ev)
			}
		}

		for _, name := range charOrder {
			locs := charLocations[name]
			if len(locs) < 2 {
				continue
			}

			entities := []ConflictEntity{{
				EntityID:      characterID(characters, name),
				EntityType:    "character",
				EntityName:    name,
				ConflictField: "location",
				ConflictValue: strings.Join(locs, ", "),
			}}
			for _, loc := range locs {
				entities = append(entities, ConflictEntity{
					EntityID:   locationID(locations, loc),
					EntityType: "location",
					EntityName: loc,
				})
			}

			eventKeys := make([]string, 0, len(charEvents[name]))
			var eventNames []string
			for _, ev := range charEvents[name] {
				eventKeys = append(eventKeys, ev.Key())
				eventNames = append(eventNames, ev.Name)
			}

			conflicts = append(conflicts, TimelineConflict{
				ID:       fmt.Sprintf("location-%s-%s", slugify(name), runToken()),
				Type:     ConflictTypeLocation,
				Severity: SeverityCritical,
				Entities: entities,
				Events:   eventKeys,
				Description: fmt.Sprintf("%s appears in %d different locations (%s) at %q: %s",
					name, len(locs), strings.Join(locs, ", "), key, strings.Join(eventNames, "; ")),
				Suggestion: "Add travel time between the events or correct the conflicting locations/dates",
				Detected:   d.stamp(),
			})
		}
	}

	return conflicts
}
