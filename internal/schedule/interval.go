package schedule

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Clock is a wall-clock time of day in minutes from midnight.
type Clock int

// ParseClock accepts "15:04" or "15:04:05"; seconds are dropped.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// ParseDate validates a calendar day in "2006-01-02" form.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q", s)
	}
	return t.Format(dateLayout), nil
}

// Interval is a day-scoped half-open interval [Start, End). Start and End
// carry no date of their own, so intervals on different days never meet.
type Interval struct {
	Date  string
	Start Clock
	End   Clock
}

// Overlaps reports whether the two intervals share any instant. Touching
// boundaries (a.End == b.Start) do not overlap, so back-to-back
// appointments are allowed.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.Date != other.Date {
		return false
	}
	return iv.Start < other.End && iv.End > other.Start
}
