// Package timeparse converts timestamp strings into UTC instants.
// Three explicit formats are supported (epoch milliseconds, epoch seconds,
// RFC3339 with offset) plus a heuristic auto-detect mode for mixed input.
package timeparse

import (
	"strconv"
	"strings"
	"time"

	perr "tzbucket/internal/platform/errors"
)

// Format selects how a timestamp string is interpreted.
type Format uint8

const (
	// EpochMs is Unix epoch milliseconds, e.g. "1793362500000". The default.
	EpochMs Format = iota

	// EpochS is Unix epoch seconds, e.g. "1793362500"
	EpochS

	// RFC3339 is offset-carrying text, e.g. "2026-03-29T00:15:00Z" or
	// "2026-03-29T00:15:00+01:00". The offset is required; naive local
	// datetimes belong to the localtime package instead
	RFC3339
)

// String returns the wire name of the format
func (f Format) String() string {
	switch f {
	case EpochMs:
		return "epoch_ms"
	case EpochS:
		return "epoch_s"
	case RFC3339:
		return "rfc3339"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as written in flags and config files
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "epoch_ms":
		return EpochMs, nil
	case "epoch_s":
		return EpochS, nil
	case "rfc3339":
		return RFC3339, nil
	default:
		return EpochMs, perr.Inputf("Invalid format '%s'. Expected: epoch_ms, epoch_s, rfc3339", s)
	}
}

// Representable instant range. Epoch values mapping outside the years
// 0001-9999 are parse errors, never panics or silent wraparound
var (
	minInstant = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxInstant = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

func inRange(t time.Time) bool {
	return !t.Before(minInstant) && !t.After(maxInstant)
}

// Parse converts a timestamp string in the given format to a UTC instant.
// Surrounding whitespace is trimmed before evaluation
func Parse(input string, format Format) (time.Time, error) {
	trimmed := strings.TrimSpace(input)

	switch format {
	case EpochMs:
		return parseEpochMs(trimmed)
	case EpochS:
		return parseEpochS(trimmed)
	case RFC3339:
		return parseRFC3339(trimmed)
	default:
		return time.Time{}, perr.Parsef("Unknown format: '%s'. Expected 'epoch_ms', 'epoch_s', or 'rfc3339'", format)
	}
}

func parseEpochMs(input string) (time.Time, error) {
	ms, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return time.Time{}, perr.Parsef("Invalid epoch milliseconds: '%s'. Expected integer value.", input)
	}
	t := time.UnixMilli(ms).UTC()
	if !inRange(t) {
		return time.Time{}, perr.Parsef("Epoch milliseconds out of range: %d", ms)
	}
	return t, nil
}

func parseEpochS(input string) (time.Time, error) {
	s, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return time.Time{}, perr.Parsef("Invalid epoch seconds: '%s'. Expected integer value.", input)
	}
	t := time.Unix(s, 0).UTC()
	if !inRange(t) {
		return time.Time{}, perr.Parsef("Epoch seconds out of range: %d", s)
	}
	return t, nil
}

func parseRFC3339(input string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return time.Time{}, perr.Parsef("Invalid RFC3339 timestamp: '%s'. Error: %v", input, err)
	}
	return t.UTC(), nil
}

// msThreshold splits auto-detected integers into seconds vs milliseconds.
// 10^10 seconds is the year 2286 while 10^10 ms is March 2001, so values
// above it are taken as milliseconds. Known limitation: the heuristic is
// ambiguous near the threshold and for negative (pre-1970) values, which
// always read as seconds; callers that need exactness pass an explicit format
const msThreshold = 10_000_000_000

// ParseAuto converts a timestamp string to a UTC instant, guessing the
// format: text with RFC3339 markers parses as RFC3339, integers split on
// msThreshold, anything else is a parse error
func ParseAuto(input string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)

	if looksRFC3339(trimmed) {
		return parseRFC3339(trimmed)
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		if n > msThreshold {
			return parseEpochMs(trimmed)
		}
		return parseEpochS(trimmed)
	}
	return time.Time{}, perr.Parsef("Could not auto-detect format for: '%s'", input)
}

// looksRFC3339 reports whether s carries datetime markers: a 'T', a 'Z',
// a '+', or a '-' six bytes from the end (the "-07:00" suffix position,
// which keeps plain negative integers out)
func looksRFC3339(s string) bool {
	if strings.ContainsAny(s, "TZ+") {
		return true
	}
	return len(s) > 6 && s[len(s)-6] == '-'
}
