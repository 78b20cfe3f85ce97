package schedule

import "time"

// Interval is a half-open time range [Start, End). Half-open intervals let
// adjacent bookings touch without conflicting: one appointment may end at the
// exact instant the next one starts.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// EndOf computes the end instant of a booking that starts at start and runs
// for durationMinutes.
func EndOf(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}
