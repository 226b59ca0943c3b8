package entities

import "time"

// Calendar normalizes timestamps to calendar days in one fixed zone.
// Own and reported records must be normalized with the same Calendar,
// otherwise per-day merges diverge.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a calendar for loc; nil means UTC
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// LoadCalendar returns a calendar for the named IANA zone
func LoadCalendar(name string) (Calendar, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Calendar{}, err
	}
	return NewCalendar(loc), nil
}

// Location returns the calendar zone
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Day strips the time of day from t in the calendar zone
func (c Calendar) Day(t time.Time) time.Time {
	y, m, d := t.In(c.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location())
}

// SameDay reports whether a and b fall on the same calendar day
func (c Calendar) SameDay(a, b time.Time) bool {
	return c.Day(a).Equal(c.Day(b))
}

// AddDays moves n calendar days from the day containing t
func (c Calendar) AddDays(t time.Time, n int) time.Time {
	y, m, d := t.In(c.Location()).Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, c.Location())
}

// DaysBetween returns the number of calendar days from the day of `from`
// to the day of `to`. Counting happens on dates, so DST shifts do not matter.
func (c Calendar) DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.In(c.Location()).Date()
	ty, tm, td := to.In(c.Location()).Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
