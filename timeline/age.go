package timeline

// detectAgeConflicts is a deliberate placeholder: age checking needs a
// birth-date/calendar model that is out of scope. It always contributes an
// empty list, and stays an explicit, testable contract rather than
// undefined behavior.
func (d *Detector) detectAgeConflicts() []TimelineConflict {
	return nil
}
