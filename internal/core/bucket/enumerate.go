package bucket

import (
	"sort"
	"time"

	"tzbucket/internal/core/localtime"
	perr "tzbucket/internal/platform/errors"
)

// Enumerate returns every bucket overlapping [startUTC, endUTC),
// deduplicated by key and sorted by start instant. The walk steps through
// local calendar dates, so buckets shortened or stretched by DST are
// visited exactly once.
func Enumerate(startUTC, endUTC time.Time, z *localtime.Zone, interval Interval, weekStart WeekStart) ([]Bucket, error) {
	cursor := z.Local(startUTC).Date
	last := z.Local(endUTC).Date

	switch interval {
	case Day:
	case Week:
		cursor = cursor.AddDays(-daysSinceWeekStart(cursor.Weekday(), weekStart))
	case Month:
		cursor = localtime.Date{Year: cursor.Year, Month: cursor.Month, Day: 1}
	default:
		return nil, perr.Runtimef("unhandled interval %d", interval)
	}

	out := []Bucket{}
	seen := map[string]bool{}
	for !cursor.After(last) {
		midnight, err := z.Midnight(cursor)
		if err != nil {
			return nil, err
		}
		b, bStart, bEnd, err := compute(midnight, z, interval, weekStart)
		if err != nil {
			return nil, err
		}
		if bStart.Before(endUTC) && bEnd.After(startUTC) && !seen[b.Key] {
			seen[b.Key] = true
			out = append(out, b)
		}

		switch interval {
		case Day:
			cursor = cursor.AddDays(1)
		case Week:
			cursor = cursor.AddDays(7)
		case Month:
			cursor = nextMonthStart(cursor)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartUTC < out[j].StartUTC })
	return out, nil
}
