// Package bucket assigns UTC instants to calendar-aligned buckets (day,
// week, month) in a named zone. Boundaries are derived in local calendar
// arithmetic and each one is resolved to UTC independently, so buckets
// spanning a DST transition come out 23 or 25 hours long instead of a
// fixed 24.
package bucket

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tzbucket/internal/core/localtime"
	"tzbucket/internal/core/timeparse"
	perr "tzbucket/internal/platform/errors"
)

// Interval is the bucket granularity.
type Interval uint8

const (
	Day Interval = iota
	Week
	Month
)

func (i Interval) String() string {
	switch i {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the lowercase text form.
func (i Interval) MarshalJSON() ([]byte, error) { return json.Marshal(i.String()) }

// ParseInterval parses the textual granularity name, case-insensitively.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(s) {
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	default:
		return 0, perr.Inputf("Invalid interval '%s'. Expected: day, week, month", s)
	}
}

// WeekStart selects which weekday opens a week bucket.
type WeekStart uint8

const (
	Monday WeekStart = iota
	Sunday
)

func (w WeekStart) String() string {
	switch w {
	case Monday:
		return "monday"
	case Sunday:
		return "sunday"
	default:
		return "unknown"
	}
}

// ParseWeekStart parses the textual week start name, case-insensitively.
func ParseWeekStart(s string) (WeekStart, error) {
	switch strings.ToLower(s) {
	case "monday":
		return Monday, nil
	case "sunday":
		return Sunday, nil
	default:
		return 0, perr.Inputf("Invalid week_start '%s'. Expected: monday, sunday", s)
	}
}

// Bucket is the wire record for one computed bucket. Local boundaries carry
// the numeric UTC offset in effect at that instant; the two offsets differ
// when the bucket spans a transition.
type Bucket struct {
	Key        string `json:"key"`
	StartLocal string `json:"start_local"`
	EndLocal   string `json:"end_local"`
	StartUTC   string `json:"start_utc"`
	EndUTC     string `json:"end_utc"`
}

// InputTimestamp echoes the trimmed input text alongside its epoch form.
type InputTimestamp struct {
	TS      string `json:"ts"`
	EpochMs int64  `json:"epoch_ms"`
}

// Result is the wire record for one bucketed timestamp.
type Result struct {
	Input    InputTimestamp `json:"input"`
	TZ       string         `json:"tz"`
	Interval Interval       `json:"interval"`
	Bucket   Bucket         `json:"bucket"`
}

// Compute buckets a UTC instant into the zone's calendar.
func Compute(instant time.Time, z *localtime.Zone, interval Interval, weekStart WeekStart) (Bucket, error) {
	b, _, _, err := compute(instant, z, interval, weekStart)
	return b, err
}

// compute also returns the resolved boundary instants so the range
// enumerator can test overlap without reparsing the rendered text.
func compute(instant time.Time, z *localtime.Zone, interval Interval, weekStart WeekStart) (Bucket, time.Time, time.Time, error) {
	local := z.Local(instant)

	var start, end localtime.Date
	var key string
	switch interval {
	case Day:
		start = local.Date
		end = start.AddDays(1)
		key = start.String()
	case Week:
		start = local.Date.AddDays(-daysSinceWeekStart(local.Weekday(), weekStart))
		end = start.AddDays(7)
		key = start.String()
	case Month:
		start = localtime.Date{Year: local.Year, Month: local.Month, Day: 1}
		end = nextMonthStart(start)
		key = fmt.Sprintf("%04d-%02d", local.Year, int(local.Month))
	default:
		return Bucket{}, time.Time{}, time.Time{}, perr.Runtimef("unhandled interval %d", interval)
	}

	startUTC, err := z.Midnight(start)
	if err != nil {
		return Bucket{}, time.Time{}, time.Time{}, err
	}
	endUTC, err := z.Midnight(end)
	if err != nil {
		return Bucket{}, time.Time{}, time.Time{}, err
	}

	b := Bucket{
		Key:        key,
		StartLocal: z.FormatLocal(startUTC),
		EndLocal:   z.FormatLocal(endUTC),
		StartUTC:   localtime.FormatUTC(startUTC),
		EndUTC:     localtime.FormatUTC(endUTC),
	}
	return b, startUTC, endUTC, nil
}

// ComputeFromString parses a raw timestamp, buckets it, and assembles the
// full wire record.
func ComputeFromString(raw string, format timeparse.Format, z *localtime.Zone, interval Interval, weekStart WeekStart) (Result, error) {
	instant, err := timeparse.Parse(raw, format)
	if err != nil {
		return Result{}, err
	}
	b, err := Compute(instant, z, interval, weekStart)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Input:    InputTimestamp{TS: strings.TrimSpace(raw), EpochMs: instant.UnixMilli()},
		TZ:       z.Name(),
		Interval: interval,
		Bucket:   b,
	}, nil
}

// daysSinceWeekStart counts days back from wd to the opening weekday.
func daysSinceWeekStart(wd time.Weekday, weekStart WeekStart) int {
	if weekStart == Sunday {
		return int(wd)
	}
	return (int(wd) + 6) % 7
}

// nextMonthStart returns the first day of the month after d's.
func nextMonthStart(d localtime.Date) localtime.Date {
	if d.Month == time.December {
		return localtime.Date{Year: d.Year + 1, Month: time.January, Day: 1}
	}
	return localtime.Date{Year: d.Year, Month: d.Month + 1, Day: 1}
}
