package schedule

import (
	"sort"
	"time"
)

// AvailableSlots walks the working window on the calendar date of date in loc
// and returns every start time where a booking of duration would fit without
// overlapping any busy interval.
//
// The cursor starts at the window open and advances by duration after each
// free slot. When a candidate overlaps a busy interval the cursor jumps to
// that interval's end and the overlap test restarts against every busy
// interval: busy intervals are not assumed to be mutually disjoint, so
// escaping one may still land inside another. The walk stops once a full
// duration no longer fits before the window close.
//
// The result is strictly increasing and depends only on the arguments.
func AvailableSlots(date time.Time, window WorkingWindow, duration time.Duration, busy []Interval, loc *time.Location) []time.Time {
	if duration <= 0 || !window.Valid() {
		return nil
	}

	open := window.Open.On(date, loc)
	close := window.Close.On(date, loc)

	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var slots []time.Time
	cursor := open
	for !cursor.Add(duration).After(close) {
		candidate := Interval{Start: cursor, End: cursor.Add(duration)}
		if hit, ok := firstOverlap(candidate, sorted); ok {
			// Overlap implies hit.End > cursor, so the cursor always moves
			// forward and the loop terminates.
			cursor = hit.End
			continue
		}
		slots = append(slots, cursor)
		cursor = cursor.Add(duration)
	}
	return slots
}

func firstOverlap(candidate Interval, busy []Interval) (Interval, bool) {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return b, true
		}
	}
	return Interval{}, false
}
