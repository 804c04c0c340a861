// Package localtime resolves civil wall-clock readings against IANA zones.
// A wall-clock reading carries no offset; depending on the zone's DST rules
// it maps to exactly one UTC instant, to none (skipped by a spring-forward
// jump), or to two (repeated by a fall-back jump).
package localtime

import (
	"fmt"
	"time"

	perr "tzbucket/internal/platform/errors"
)

// Date is a calendar date in some zone's civil time.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// AddDays returns the date n days later (n may be negative).
func (d Date) AddDays(n int) Date {
	y, m, day := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC).Date()
	return Date{Year: y, Month: m, Day: day}
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// After reports whether d is a later date than o.
func (d Date) After(o Date) bool {
	if d.Year != o.Year {
		return d.Year > o.Year
	}
	if d.Month != o.Month {
		return d.Month > o.Month
	}
	return d.Day > o.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DateTime is a wall-clock reading: a date plus a time of day, no zone attached.
type DateTime struct {
	Date
	Hour   int
	Minute int
	Second int
}

// AddSeconds returns the reading n seconds later on the wall clock
// (n may be negative). Day boundaries normalize through the calendar.
func (dt DateTime) AddSeconds(n int) DateTime {
	t := time.Date(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second+n, 0, time.UTC)
	return DateTime{
		Date:   Date{Year: t.Year(), Month: t.Month(), Day: t.Day()},
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Sub returns the wall-clock seconds from o to dt.
func (dt DateTime) Sub(o DateTime) int64 {
	a := time.Date(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, 0, time.UTC)
	b := time.Date(o.Year, o.Month, o.Day, o.Hour, o.Minute, o.Second, 0, time.UTC)
	return int64(a.Sub(b) / time.Second)
}

func (dt DateTime) String() string {
	return fmt.Sprintf("%sT%02d:%02d:%02d", dt.Date, dt.Hour, dt.Minute, dt.Second)
}

// wallLayouts are the accepted local time inputs, seconds optional, T or space.
var wallLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDateTime parses a local wall-clock string without an offset.
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range wallLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return DateTime{
			Date:   Date{Year: t.Year(), Month: t.Month(), Day: t.Day()},
			Hour:   t.Hour(),
			Minute: t.Minute(),
			Second: t.Second(),
		}, nil
	}
	return DateTime{}, perr.Inputf("Invalid local time format '%s'. Expected: YYYY-MM-DDTHH:MM:SS", s)
}
