package schedule

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "identical",
			a:    Interval{Start: at(10, 0), End: at(10, 30)},
			b:    Interval{Start: at(10, 0), End: at(10, 30)},
			want: true,
		},
		{
			name: "partial overlap",
			a:    Interval{Start: at(10, 0), End: at(11, 0)},
			b:    Interval{Start: at(10, 30), End: at(11, 30)},
			want: true,
		},
		{
			name: "contained",
			a:    Interval{Start: at(10, 0), End: at(12, 0)},
			b:    Interval{Start: at(10, 30), End: at(11, 0)},
			want: true,
		},
		{
			name: "back to back does not conflict",
			a:    Interval{Start: at(10, 0), End: at(10, 30)},
			b:    Interval{Start: at(10, 30), End: at(11, 0)},
			want: false,
		},
		{
			name: "disjoint",
			a:    Interval{Start: at(9, 0), End: at(9, 30)},
			b:    Interval{Start: at(14, 0), End: at(15, 0)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Fatalf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Fatalf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEndOf(t *testing.T) {
	start := at(10, 0)
	if got := EndOf(start, 45); !got.Equal(at(10, 45)) {
		t.Fatalf("EndOf = %v, want %v", got, at(10, 45))
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatalf("ParseTimeOfDay error: %v", err)
	}
	if tod.Hour != 9 || tod.Minute != 30 {
		t.Fatalf("tod = %+v, want 09:30", tod)
	}

	for _, bad := range []string{"", "9", "25:00", "10:75", "aa:bb"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("ParseTimeOfDay(%q) expected error", bad)
		}
	}
}

func TestWorkingWindowValid(t *testing.T) {
	if !DefaultWindow.Valid() {
		t.Fatalf("default window must be valid")
	}
	inverted := WorkingWindow{Open: TimeOfDay{Hour: 18}, Close: TimeOfDay{Hour: 9}}
	if inverted.Valid() {
		t.Fatalf("inverted window must be invalid")
	}
}
