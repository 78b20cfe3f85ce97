package schedule

import "github.com/google/uuid"

// Busy is an occupying appointment's interval together with the appointment
// it belongs to, so a conflict can be traced back to the booking that caused
// it and so an appointment can be moved without colliding with itself.
type Busy struct {
	AppointmentID uuid.UUID
	Interval
}

// FirstConflict returns the first busy interval that overlaps candidate.
// When excludeID is not uuid.Nil, the busy entry with that appointment id is
// skipped; the update path uses this so an appointment never conflicts with
// its own current slot.
func FirstConflict(candidate Interval, busy []Busy, excludeID uuid.UUID) (Busy, bool) {
	for _, b := range busy {
		if excludeID != uuid.Nil && b.AppointmentID == excludeID {
			continue
		}
		if candidate.Overlaps(b.Interval) {
			return b, true
		}
	}
	return Busy{}, false
}

// HasConflict reports whether candidate overlaps any busy interval, honoring
// the same exclusion rule as FirstConflict.
func HasConflict(candidate Interval, busy []Busy, excludeID uuid.UUID) bool {
	_, ok := FirstConflict(candidate, busy, excludeID)
	return ok
}
