package timeparse

import (
	"strings"
	"testing"
	"time"

	perr "tzbucket/internal/platform/errors"
)

func TestParseEpochMs(t *testing.T) {
	want := time.UnixMilli(1793362500000).UTC()

	got, err := Parse("1793362500000", EpochMs)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}

	// surrounding whitespace is ignored
	got, err = Parse("  1793362500000\t", EpochMs)
	if err != nil {
		t.Fatalf("Parse with whitespace: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("Parse with whitespace = %v, want %v", got, want)
	}
}

func TestParseEpochS(t *testing.T) {
	want := time.Unix(1793362500, 0).UTC()
	got, err := Parse("1793362500", EpochS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}

	// negative epochs are valid instants before 1970
	got, err = Parse("-86400", EpochS)
	if err != nil {
		t.Fatalf("Parse negative: %v", err)
	}
	if want := time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("Parse negative = %v, want %v", got, want)
	}
}

func TestParseEpochErrors(t *testing.T) {
	cases := []struct {
		in     string
		format Format
		msg    string
	}{
		{"not-a-number", EpochMs, "Invalid epoch milliseconds"},
		{"12.5", EpochMs, "Invalid epoch milliseconds"},
		{"99999999999999999999", EpochMs, "Invalid epoch milliseconds"}, // overflows int64
		{"999999999999999999", EpochMs, "Epoch milliseconds out of range"},
		{"not-a-number", EpochS, "Invalid epoch seconds"},
		{"999999999999", EpochS, "Epoch seconds out of range"},
		{"-999999999999", EpochS, "Epoch seconds out of range"}, // before year 1
	}
	for _, c := range cases {
		_, err := Parse(c.in, c.format)
		if err == nil {
			t.Fatalf("Parse(%q, %v): expected error", c.in, c.format)
		}
		if !perr.IsCode(err, perr.ErrorCodeParse) {
			t.Fatalf("Parse(%q, %v): code = %v, want Parse", c.in, c.format, perr.CodeOf(err))
		}
		if !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("Parse(%q, %v) error = %q, want substring %q", c.in, c.format, err, c.msg)
		}
	}
}

func TestParseRFC3339(t *testing.T) {
	got, err := Parse("2026-03-29T00:15:00Z", RFC3339)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := time.Date(2026, 3, 29, 0, 15, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}

	// offsets convert to UTC
	got, err = Parse("2026-03-29T00:15:00+01:00", RFC3339)
	if err != nil {
		t.Fatalf("Parse with offset: %v", err)
	}
	if want := time.Date(2026, 3, 28, 23, 15, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("Parse with offset = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("Parse result location = %v, want UTC", got.Location())
	}
}

func TestParseRFC3339Errors(t *testing.T) {
	for _, in := range []string{
		"not-a-date",
		"2026-03-29T00:15:00", // offset required
		"2026-13-29T00:15:00Z",
		"",
	} {
		_, err := Parse(in, RFC3339)
		if err == nil {
			t.Fatalf("Parse(%q): expected error", in)
		}
		if !perr.IsCode(err, perr.ErrorCodeParse) {
			t.Fatalf("Parse(%q): code = %v, want Parse", in, perr.CodeOf(err))
		}
		if !strings.Contains(err.Error(), "Invalid RFC3339 timestamp") {
			t.Fatalf("Parse(%q) error = %q", in, err)
		}
	}
}

func TestRoundTripRFC3339(t *testing.T) {
	// parse then reformat in UTC is idempotent for valid timestamps
	for _, in := range []string{
		"2026-03-29T00:15:00Z",
		"2026-10-25T01:00:00Z",
		"1999-12-31T23:59:59Z",
	} {
		got, err := Parse(in, RFC3339)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if out := got.Format("2006-01-02T15:04:05Z"); out != in {
			t.Fatalf("round trip %q -> %q", in, out)
		}
	}
}

func TestParseAuto(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-29T00:15:00Z", time.Date(2026, 3, 29, 0, 15, 0, 0, time.UTC)},
		{"2026-03-29T00:15:00+01:00", time.Date(2026, 3, 28, 23, 15, 0, 0, time.UTC)},
		{"1793362500000", time.UnixMilli(1793362500000).UTC()},
		{"1793362500", time.Unix(1793362500, 0).UTC()},
		// exactly at the threshold reads as seconds (year 2286)
		{"10000000000", time.Unix(10000000000, 0).UTC()},
		// negative integers read as seconds, never as an offset suffix
		{"-12345", time.Unix(-12345, 0).UTC()},
	}
	for _, c := range cases {
		got, err := ParseAuto(c.in)
		if err != nil {
			t.Fatalf("ParseAuto(%q): %v", c.in, err)
		}
		if !got.Equal(c.want) {
			t.Fatalf("ParseAuto(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseAutoClassification(t *testing.T) {
	// a '-' six bytes from the end routes to the RFC3339 parser even when
	// the rest of the text is junk; the error must come from that branch
	_, err := ParseAuto("junk-05:00")
	if err == nil || !strings.Contains(err.Error(), "Invalid RFC3339 timestamp") {
		t.Fatalf("ParseAuto offset-suffix error = %v, want RFC3339 parse error", err)
	}

	_, err = ParseAuto("definitely not a time")
	if err == nil || !strings.Contains(err.Error(), "Could not auto-detect format") {
		t.Fatalf("ParseAuto junk error = %v", err)
	}

	if _, err := ParseAuto(""); err == nil {
		t.Fatalf("ParseAuto empty: expected error")
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"epoch_ms", EpochMs},
		{"epoch_s", EpochS},
		{"rfc3339", RFC3339},
		{"RFC3339", RFC3339}, // case-insensitive
	}
	for _, c := range cases {
		got, err := ParseFormat(c.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseFormat(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	_, err := ParseFormat("iso8601")
	if err == nil {
		t.Fatalf("ParseFormat: expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeInput) {
		t.Fatalf("ParseFormat error code = %v, want Input", perr.CodeOf(err))
	}
	if want := "Invalid format 'iso8601'. Expected: epoch_ms, epoch_s, rfc3339"; err.Error() != want {
		t.Fatalf("ParseFormat error = %q, want %q", err, want)
	}
}

func TestFormatString(t *testing.T) {
	if EpochMs.String() != "epoch_ms" || EpochS.String() != "epoch_s" || RFC3339.String() != "rfc3339" {
		t.Fatalf("Format.String mismatch: %v %v %v", EpochMs, EpochS, RFC3339)
	}
}
