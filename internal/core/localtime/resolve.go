package localtime

import (
	"strings"
	"time"

	perr "tzbucket/internal/platform/errors"
)

// searchBound caps the second-by-second wall-clock scans at two days in
// either direction. Real DST jumps are an hour or two; the slack covers
// historical oddities without letting a broken zone spin forever.
const searchBound = 2 * 24 * 60 * 60

// NonexistentPolicy selects how a skipped wall-clock reading resolves.
type NonexistentPolicy uint8

const (
	// NonexistentError rejects skipped readings with a policy error.
	NonexistentError NonexistentPolicy = iota
	// NonexistentShiftForward moves the reading past the jump, keeping its
	// offset into the skipped region.
	NonexistentShiftForward
)

func (p NonexistentPolicy) String() string {
	switch p {
	case NonexistentError:
		return "error"
	case NonexistentShiftForward:
		return "shift_forward"
	default:
		return "unknown"
	}
}

// ParseNonexistentPolicy parses the textual policy name, case-insensitively.
func ParseNonexistentPolicy(s string) (NonexistentPolicy, error) {
	switch strings.ToLower(s) {
	case "error":
		return NonexistentError, nil
	case "shift_forward":
		return NonexistentShiftForward, nil
	default:
		return 0, perr.Inputf("Invalid policy_nonexistent '%s'. Expected: error, shift_forward", s)
	}
}

// AmbiguousPolicy selects how a repeated wall-clock reading resolves.
type AmbiguousPolicy uint8

const (
	// AmbiguousError rejects repeated readings with a policy error.
	AmbiguousError AmbiguousPolicy = iota
	// AmbiguousFirst picks the earlier instant (still on summer time).
	AmbiguousFirst
	// AmbiguousSecond picks the later instant (back on standard time).
	AmbiguousSecond
)

func (p AmbiguousPolicy) String() string {
	switch p {
	case AmbiguousError:
		return "error"
	case AmbiguousFirst:
		return "first"
	case AmbiguousSecond:
		return "second"
	default:
		return "unknown"
	}
}

// ParseAmbiguousPolicy parses the textual policy name, case-insensitively.
func ParseAmbiguousPolicy(s string) (AmbiguousPolicy, error) {
	switch strings.ToLower(s) {
	case "error":
		return AmbiguousError, nil
	case "first":
		return AmbiguousFirst, nil
	case "second":
		return AmbiguousSecond, nil
	default:
		return 0, perr.Inputf("Invalid policy_ambiguous '%s'. Expected: error, first, second", s)
	}
}

// Classification statuses. The policy-error status tag on the wire carries
// the same values.
const (
	StatusNormal      = "normal"
	StatusAmbiguous   = "ambiguous"
	StatusNonexistent = "nonexistent"
)

// Resolution records which policy fired and the local-offset text of the
// instant it produced.
type Resolution struct {
	Policy string `json:"policy"`
	Result string `json:"result"`
}

// Explanation is the wire record for a resolved wall-clock reading.
// Resolution is nil for normal readings.
type Explanation struct {
	LocalTime  string      `json:"local_time"`
	TZ         string      `json:"tz"`
	Status     string      `json:"status"`
	Resolution *Resolution `json:"resolution,omitempty"`
}

// Explain classifies w against the zone and applies the matching policy.
// Repeated readings rejected by AmbiguousError and skipped readings rejected
// by NonexistentError return policy errors tagged with the status; an
// exhausted shift-forward search returns a runtime error.
func Explain(w DateTime, z *Zone, nonexistent NonexistentPolicy, ambiguous AmbiguousPolicy) (Explanation, error) {
	out := Explanation{LocalTime: w.String(), TZ: z.Name(), Status: StatusNormal}

	is := z.Instants(w)
	switch len(is) {
	case 1:
		return out, nil

	case 2:
		out.Status = StatusAmbiguous
		switch ambiguous {
		case AmbiguousError:
			return Explanation{}, perr.Policyf(StatusAmbiguous,
				"Ambiguous time '%s' in timezone '%s'. Occurs twice due to DST fall back. "+
					"Use --policy-ambiguous=first or --policy-ambiguous=second to resolve.",
				w, z.Name())
		case AmbiguousFirst:
			out.Resolution = &Resolution{Policy: "first", Result: z.FormatLocal(is[0])}
		case AmbiguousSecond:
			out.Resolution = &Resolution{Policy: "second", Result: z.FormatLocal(is[1])}
		default:
			return Explanation{}, perr.Runtimef("unhandled ambiguous policy %d", ambiguous)
		}
		return out, nil

	default:
		out.Status = StatusNonexistent
		switch nonexistent {
		case NonexistentError:
			return Explanation{}, perr.Policyf(StatusNonexistent,
				"Nonexistent time '%s' in timezone '%s'. Skipped due to DST spring forward. "+
					"Use --policy-nonexistent=shift_forward to resolve.",
				w, z.Name())
		case NonexistentShiftForward:
			t, err := z.shiftForward(w)
			if err != nil {
				return Explanation{}, err
			}
			out.Resolution = &Resolution{Policy: "shift_forward", Result: z.FormatLocal(t)}
		default:
			return Explanation{}, perr.Runtimef("unhandled nonexistent policy %d", nonexistent)
		}
		return out, nil
	}
}

// shiftForward resolves a skipped reading by measuring the skipped region
// and moving the reading forward by its width, so 02:30 inside a
// 02:00->03:00 jump lands on 03:30. prev and next sit one wall-clock second
// outside the gap on either side.
func (z *Zone) shiftForward(w DateTime) (time.Time, error) {
	prev, err := z.previousValid(w)
	if err != nil {
		return time.Time{}, err
	}
	next, err := z.nextValid(w)
	if err != nil {
		return time.Time{}, err
	}

	gap := z.Local(next).Sub(z.Local(prev)) - 1
	shifted := w.AddSeconds(int(gap))
	if is := z.Instants(shifted); len(is) > 0 {
		return is[0], nil
	}
	return next, nil
}

// previousValid scans backward for the latest resolvable reading before w.
// Repeated readings resolve to their later pass, the one adjacent to w.
func (z *Zone) previousValid(w DateTime) (time.Time, error) {
	for s := 1; s <= searchBound; s++ {
		if is := z.Instants(w.AddSeconds(-s)); len(is) > 0 {
			return is[len(is)-1], nil
		}
	}
	return time.Time{}, perr.Runtimef("Could not resolve shifted time with shift_forward policy")
}

// nextValid scans forward for the earliest resolvable reading after w.
func (z *Zone) nextValid(w DateTime) (time.Time, error) {
	for s := 1; s <= searchBound; s++ {
		if is := z.Instants(w.AddSeconds(s)); len(is) > 0 {
			return is[0], nil
		}
	}
	return time.Time{}, perr.Runtimef("Could not resolve shifted time with shift_forward policy")
}
