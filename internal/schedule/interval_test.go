package schedule_test

import (
	"testing"

	"appointment-planner-api/internal/schedule"
)

func mustClock(t *testing.T, s string) schedule.Clock {
	t.Helper()
	c, err := schedule.ParseClock(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return c
}

func iv(t *testing.T, date, start, end string) schedule.Interval {
	t.Helper()
	return schedule.Interval{Date: date, Start: mustClock(t, start), End: mustClock(t, end)}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
		bad  bool
	}{
		{in: "09:00", want: "09:00"},
		{in: "23:59", want: "23:59"},
		{in: "00:00", want: "00:00"},
		{in: "14:30:45", want: "14:30"},
		{in: "9am", bad: true},
		{in: "25:00", bad: true},
		{in: "", bad: true},
	}
	for _, tt := range tests {
		c, err := schedule.ParseClock(tt.in)
		if tt.bad {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if c.String() != tt.want {
			t.Errorf("ParseClock(%q) = %s, want %s", tt.in, c, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := schedule.ParseDate("2024-01-10"); err != nil {
		t.Fatalf("valid date: %v", err)
	}
	for _, bad := range []string{"", "10/01/2024", "2024-13-01", "tomorrow"} {
		if _, err := schedule.ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestOverlaps(t *testing.T) {
	base := iv(t, "2024-01-10", "09:00", "10:00")

	tests := []struct {
		name  string
		other schedule.Interval
		want  bool
	}{
		{"identical", iv(t, "2024-01-10", "09:00", "10:00"), true},
		{"partial overlap", iv(t, "2024-01-10", "09:30", "10:30"), true},
		{"contained", iv(t, "2024-01-10", "09:15", "09:45"), true},
		{"containing", iv(t, "2024-01-10", "08:00", "11:00"), true},
		{"back to back after", iv(t, "2024-01-10", "10:00", "11:00"), false},
		{"back to back before", iv(t, "2024-01-10", "08:00", "09:00"), false},
		{"disjoint", iv(t, "2024-01-10", "12:00", "13:00"), false},
		{"different date same times", iv(t, "2024-01-11", "09:00", "10:00"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("overlap = %v, want %v", got, tt.want)
			}
			// overlap is symmetric
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("reverse overlap = %v, want %v", got, tt.want)
			}
		})
	}
}
