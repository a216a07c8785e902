package timeline

import (
	"fmt"
	"strings"
)

// deathKeywords mark an event as a character's death when found in its name
// or description.
var deathKeywords = []string{"death", "dies", "killed", "died"}

// detectDeathConflicts flags events involving a deceased character that
// start strictly after that character's death event. The first keyword
// match in input order is the canonical death event, not necessarily the
// chronologically first; a character whose death event has no parseable
// date is skipped entirely, since no "after" bound exists.
func (d *Detector) detectDeathConflicts(run *runContext, events []Event, characters []Character) []TimelineConflict {
	var conflicts []TimelineConflict

	for _, ch := range characters {
		status := strings.ToLower(strings.TrimSpace(ch.Status))
		if status != "deceased" && status != "dead" {
			continue
		}

		var linked []*Event
		for i := range events {
			if containsString(events[i].Characters, ch.Name) {
				linked = append(linked, &events[i])
			}
		}

		var death *Event
		for _, ev := range linked {
			if mentionsDeath(ev) {
				death = ev
				break
			}
		}
		if death == nil {
			continue
		}

		deathMillis, ok := run.startMillis(death)
		if !ok {
			continue
		}

		var postDeath []*Event
		for _, ev := range linked {
			if ev == death {
				continue
			}
			ms, ok := run.startMillis(ev)
			if ok && ms > deathMillis {
				postDeath = append(postDeath, ev)
			}
		}
		if len(postDeath) == 0 {
			continue
		}

		eventKeys := []string{death.Key()}
		var eventNames []string
		for _, ev := range postDeath {
			eventKeys = append(eventKeys, ev.Key())
			eventNames = append(eventNames, ev.Name)
		}

		conflicts = append(conflicts, TimelineConflict{
			ID:       fmt.Sprintf("death-%s-%s", slugify(ch.Name), runToken()),
			Type:     ConflictTypeDeath,
			Severity: SeverityCritical,
			Entities: []ConflictEntity{{
				EntityID:      ch.ID,
				EntityType:    "character",
				EntityName:    ch.Name,
				ConflictField: "status",
				ConflictValue: ch.Status,
			}},
			Events: eventKeys,
			Description: fmt.Sprintf("%s participates in %d events after %q: %s",
				ch.Name, len(postDeath), death.Name, strings.Join(eventNames, "; ")),
			Suggestion: "Move the later events before the death, or mark them as flashbacks/visions",
			Detected:   d.stamp(),
		})
	}

	return conflicts
}

func mentionsDeath(ev *Event) bool {
	name := strings.ToLower(ev.Name)
	desc := strings.ToLower(ev.Description)
	for _, kw := range deathKeywords {
		if strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
