// Package daterange implements half-open calendar date ranges.
package daterange

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Range is the half-open interval [Start, End) over calendar days.
// Start and End are always UTC midnights.
type Range struct {
	Start time.Time
	End   time.Time
}

// New builds a Range, dropping the time of day from both ends.
func New(start, end time.Time) Range {
	return Range{Start: Day(start), End: Day(end)}
}

// Day truncates the instant t to midnight of its UTC calendar date.
func Day(t time.Time) time.Time {
	return CalendarDay(t.UTC())
}

// CalendarDay keeps t's calendar date as read in t's own location and returns
// it as a UTC midnight. It is for values that are already dates, such as date
// columns scanned in the connection's zone.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts 2006-01-02 or an RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(layout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return Day(t), nil
}

// Parse builds a Range from two wire dates. It does not check validity.
func Parse(start, end string) (Range, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Range{}, err
	}
	return New(s, e), nil
}

// Overlaps reports whether a and b share at least one day.
// A checkout day equal to a check-in day is not an overlap.
func Overlaps(a, b Range) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Overlaps reports whether r and other share at least one day.
func (r Range) Overlaps(other Range) bool {
	return Overlaps(r, other)
}

// Valid reports Start < End. Zero-length ranges are invalid.
func (r Range) Valid() bool {
	return r.Start.Before(r.End)
}

// Started reports whether the first day of r is today or earlier.
func (r Range) Started(now time.Time) bool {
	return !r.Start.After(Day(now))
}

// Ended reports whether r is fully elapsed as of now.
func (r Range) Ended(now time.Time) bool {
	return !r.End.After(Day(now))
}

// Contains reports whether day falls inside r.
func (r Range) Contains(day time.Time) bool {
	d := Day(day)
	return !d.Before(r.Start) && d.Before(r.End)
}

// Nights is the number of days covered by r.
func (r Range) Nights() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours() / 24)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s,%s)", r.Start.Format(layout), r.End.Format(layout))
}
