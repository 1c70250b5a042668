package forecast

import (
	"fmt"
	"time"
)

// CalendarDay is a local calendar date. It carries no zone so that two days
// built from different *time.Location values still compare equal.
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day t falls on in loc. A nil loc means time.Local.
func DayOf(t time.Time, loc *time.Location) CalendarDay {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return CalendarDay{Year: y, Month: m, Day: d}
}

// Today is DayOf(now, loc). Samples must be bucketed with the same loc.
func Today(now time.Time, loc *time.Location) CalendarDay {
	return DayOf(now, loc)
}

// Start returns midnight of the day in loc.
func (d CalendarDay) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d CalendarDay) Weekday() time.Weekday {
	return d.Start(time.UTC).Weekday()
}

func (d CalendarDay) AddDays(n int) CalendarDay {
	return DayOf(d.Start(time.UTC).AddDate(0, 0, n), time.UTC)
}

func (d CalendarDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d CalendarDay) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
