package domain

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// Day is a calendar date in its canonical ISO form (YYYY-MM-DD). Ordering
// two days as strings is the same as ordering them chronologically.
type Day string

func ParseDay(s string) (Day, error) {
	if _, err := time.Parse(DayLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return Day(s), nil
}

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

func (d Day) String() string {
	return string(d)
}

func (d Day) Time() time.Time {
	t, _ := time.Parse(DayLayout, string(d))
	return t
}

func (d Day) Before(other Day) bool {
	return d < other
}
