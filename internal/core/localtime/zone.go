package localtime

import (
	"sort"
	"sync"
	"time"

	perr "tzbucket/internal/platform/errors"
)

// Boundary text layouts shared by the wire records.
// Local boundaries always carry a numeric offset; UTC boundaries a Z suffix.
const (
	layoutLocal = "2006-01-02T15:04:05-07:00"
	layoutUTC   = "2006-01-02T15:04:05Z"
)

// Zone couples a loaded IANA location with the name it resolved from.
// Zones are immutable and safe to share across goroutines.
type Zone struct {
	name string
	loc  *time.Location
}

// Name returns the IANA name the zone was loaded from.
func (z *Zone) Name() string { return z.name }

var (
	zoneMu    sync.RWMutex
	zoneCache = map[string]*Zone{}
)

// LoadZone resolves an IANA zone name against the embedded rule database,
// caching process-wide. "" and "Local" are rejected so results never depend
// on the host machine.
func LoadZone(name string) (*Zone, error) {
	zoneMu.RLock()
	z, ok := zoneCache[name]
	zoneMu.RUnlock()
	if ok {
		return z, nil
	}

	if name == "" || name == "Local" {
		return nil, perr.Timezonef("Invalid timezone '%s': not an IANA zone name", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeTimezone, "Invalid timezone '%s'", name)
	}

	z = &Zone{name: name, loc: loc}
	zoneMu.Lock()
	zoneCache[name] = z
	zoneMu.Unlock()
	return z, nil
}

// Local converts a UTC instant to its wall-clock reading in the zone.
func (z *Zone) Local(t time.Time) DateTime {
	lt := t.In(z.loc)
	return DateTime{
		Date:   Date{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()},
		Hour:   lt.Hour(),
		Minute: lt.Minute(),
		Second: lt.Second(),
	}
}

// FormatLocal renders an instant in the zone with its numeric UTC offset.
func (z *Zone) FormatLocal(t time.Time) string { return t.In(z.loc).Format(layoutLocal) }

// FormatUTC renders an instant as RFC3339 seconds in UTC.
func FormatUTC(t time.Time) string { return t.UTC().Format(layoutUTC) }

// Offset probing window for Instants. Every instant that could render as a
// given wall-clock reading lies within half a day of its naive UTC value,
// and real zones hold each offset far longer than the probe step, so the
// probed offsets cover all candidates.
const (
	probeWindow = 48 * time.Hour
	probeStep   = 6 * time.Hour
)

// Instants returns the UTC instants whose wall-clock reading in the zone
// equals w, sorted ascending: an empty slice for skipped readings, two
// entries for repeated ones. Candidates are verified by round-trip, so the
// probing can only miss, never invent.
func (z *Zone) Instants(w DateTime) []time.Time {
	rough := time.Date(w.Year, w.Month, w.Day, w.Hour, w.Minute, w.Second, 0, time.UTC)

	seen := map[int]bool{}
	var out []time.Time
	for d := -probeWindow; d <= probeWindow; d += probeStep {
		_, off := rough.Add(d).In(z.loc).Zone()
		if seen[off] {
			continue
		}
		seen[off] = true
		u := rough.Add(-time.Duration(off) * time.Second)
		if z.Local(u) == w {
			out = append(out, u)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Midnight resolves local midnight on d to a UTC instant: the earliest valid
// instant at or after 00:00:00. Some zones skip midnight outright (their
// clocks jump from 23:59:59 to 01:00:00), in which case the day starts at
// the end of the gap.
func (z *Zone) Midnight(d Date) (time.Time, error) {
	w := DateTime{Date: d}
	if is := z.Instants(w); len(is) > 0 {
		return is[0], nil
	}
	for s := 1; s <= searchBound; s++ {
		if is := z.Instants(w.AddSeconds(s)); len(is) > 0 {
			return is[0], nil
		}
	}
	return time.Time{}, perr.Runtimef("Could not resolve local midnight for date %s", d)
}
