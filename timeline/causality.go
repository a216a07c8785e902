package timeline

import "fmt"

// detectCausalityConflicts enforces "an effect must not start before its
// cause" from two independently checked sources: each event's own
// dependency list, and the explicit CausalityLink collection. Unresolvable
// references and unparseable dates are silently skipped in both. Each
// dependency edge is evaluated independently exactly once, so a cyclic
// graph simply yields one conflict per backward-pointing edge.
func (d *Detector) detectCausalityConflicts(run *runContext, events []Event, links []CausalityLink) []TimelineConflict {
	var conflicts []TimelineConflict

	for i := range events {
		ev := &events[i]
		evMillis, ok := run.startMillis(ev)
		if !ok {
			continue
		}

		for _, ref := range ev.Dependencies {
			dep, found := run.lookup(ref)
			if !found {
				continue
			}
			depMillis, ok := run.startMillis(dep)
			if !ok {
				continue
			}
			if evMillis >= depMillis {
				continue
			}

			conflicts = append(conflicts, TimelineConflict{
				ID:       fmt.Sprintf("causality-dep-%s-%s", slugify(ev.Key()), runToken()),
				Type:     ConflictTypeCausality,
				Severity: SeverityCritical,
				Entities: []ConflictEntity{
					{EntityID: ev.ID, EntityType: "event", EntityName: ev.Name, ConflictField: "dateTime", ConflictValue: ev.DateTime},
					{EntityID: dep.ID, EntityType: "event", EntityName: dep.Name, ConflictField: "dateTime", ConflictValue: dep.DateTime},
				},
				Events:      []string{ev.Key(), dep.Key()},
				Description: fmt.Sprintf("%q starts before its dependency %q", ev.Name, dep.Name),
				Suggestion:  "Re-date one of the events or remove the dependency",
				Detected:    d.stamp(),
			})
		}
	}

	for _, link := range links {
		cause, causeFound := run.lookup(link.CauseEvent)
		effect, effectFound := run.lookup(link.EffectEvent)
		if !causeFound || !effectFound {
			continue
		}

		causeMillis, causeOK := run.startMillis(cause)
		effectMillis, effectOK := run.startMillis(effect)
		if !causeOK || !effectOK {
			continue
		}
		if effectMillis >= causeMillis {
			continue
		}

		conflicts = append(conflicts, TimelineConflict{
			ID:       fmt.Sprintf("causality-link-%s-%s", slugify(link.ID), runToken()),
			Type:     ConflictTypeCausality,
			Severity: SeverityCritical,
			Entities: []ConflictEntity{
				{EntityID: effect.ID, EntityType: "event", EntityName: effect.Name, ConflictField: "dateTime", ConflictValue: effect.DateTime},
				{EntityID: cause.ID, EntityType: "event", EntityName: cause.Name, ConflictField: "dateTime", ConflictValue: cause.DateTime},
			},
			Events:      []string{effect.Key(), cause.Key()},
			Description: fmt.Sprintf("Effect %q starts before its declared cause %q", effect.Name, cause.Name),
			Suggestion:  "Re-date one of the events or remove the causality link",
			Detected:    d.stamp(),
		})
	}

	return conflicts
}
