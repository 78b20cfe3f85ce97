package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date, used to express the daily
// working window independently of any particular day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// On combines the time of day with the calendar date of t in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, loc)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// WorkingWindow is the daily time-of-day range during which slots may be
// offered.
type WorkingWindow struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// DefaultWindow is the working window used when a shop has not configured
// its own hours.
var DefaultWindow = WorkingWindow{
	Open:  TimeOfDay{Hour: 9},
	Close: TimeOfDay{Hour: 18},
}

// Valid reports whether the window closes strictly after it opens.
func (w WorkingWindow) Valid() bool {
	openMin := w.Open.Hour*60 + w.Open.Minute
	closeMin := w.Close.Hour*60 + w.Close.Minute
	return closeMin > openMin
}
