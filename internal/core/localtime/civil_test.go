package localtime

import (
	"testing"
	"time"

	perr "tzbucket/internal/platform/errors"
)

func TestDateAddDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   Date
		n    int
		want Date
	}{
		{Date{2026, time.March, 15}, 1, Date{2026, time.March, 16}},
		{Date{2026, time.March, 31}, 1, Date{2026, time.April, 1}},    // month rollover
		{Date{2026, time.December, 31}, 1, Date{2027, time.January, 1}}, // year rollover
		{Date{2026, time.March, 1}, -1, Date{2026, time.February, 28}},
		{Date{2024, time.February, 28}, 1, Date{2024, time.February, 29}}, // leap day
		{Date{2026, time.January, 1}, 365, Date{2027, time.January, 1}},
		{Date{2026, time.March, 29}, 0, Date{2026, time.March, 29}},
	}
	for _, c := range cases {
		if got := c.in.AddDays(c.n); got != c.want {
			t.Errorf("%s.AddDays(%d) = %s, want %s", c.in, c.n, got, c.want)
		}
	}
}

func TestDateWeekday(t *testing.T) {
	t.Parallel()

	if wd := (Date{2026, time.March, 29}).Weekday(); wd != time.Sunday {
		t.Fatalf("2026-03-29 weekday = %v, want Sunday", wd)
	}
	if wd := (Date{2026, time.March, 23}).Weekday(); wd != time.Monday {
		t.Fatalf("2026-03-23 weekday = %v, want Monday", wd)
	}
}

func TestDateAfter(t *testing.T) {
	t.Parallel()

	base := Date{2026, time.March, 15}
	cases := []struct {
		d    Date
		want bool
	}{
		{Date{2026, time.March, 16}, true},
		{Date{2026, time.April, 1}, true},
		{Date{2027, time.January, 1}, true},
		{Date{2026, time.March, 15}, false}, // equal
		{Date{2026, time.March, 14}, false},
		{Date{2025, time.December, 31}, false},
	}
	for _, c := range cases {
		if got := c.d.After(base); got != c.want {
			t.Errorf("%s.After(%s) = %v, want %v", c.d, base, got, c.want)
		}
	}
}

func TestDateString(t *testing.T) {
	t.Parallel()

	if got := (Date{2026, time.March, 5}).String(); got != "2026-03-05" {
		t.Fatalf("Date.String = %q", got)
	}
	if got := (Date{800, time.December, 25}).String(); got != "0800-12-25" {
		t.Fatalf("Date.String = %q", got)
	}
}

func TestDateTimeAddSeconds(t *testing.T) {
	t.Parallel()

	midnight := DateTime{Date: Date{2026, time.March, 29}}
	cases := []struct {
		n    int
		want DateTime
	}{
		{1, DateTime{Date{2026, time.March, 29}, 0, 0, 1}},
		{-1, DateTime{Date{2026, time.March, 28}, 23, 59, 59}}, // back across the day boundary
		{3600, DateTime{Date{2026, time.March, 29}, 1, 0, 0}},
		{24 * 3600, DateTime{Date{2026, time.March, 30}, 0, 0, 0}},
	}
	for _, c := range cases {
		if got := midnight.AddSeconds(c.n); got != c.want {
			t.Errorf("AddSeconds(%d) = %s, want %s", c.n, got, c.want)
		}
	}
}

func TestDateTimeSub(t *testing.T) {
	t.Parallel()

	a := DateTime{Date{2026, time.March, 29}, 3, 0, 0}
	b := DateTime{Date{2026, time.March, 29}, 1, 59, 59}
	if got := a.Sub(b); got != 3601 {
		t.Fatalf("Sub = %d, want 3601", got)
	}
	if got := b.Sub(a); got != -3601 {
		t.Fatalf("Sub reversed = %d, want -3601", got)
	}
	if got := a.Sub(a); got != 0 {
		t.Fatalf("Sub self = %d, want 0", got)
	}
}

func TestDateTimeString(t *testing.T) {
	t.Parallel()

	dt := DateTime{Date{2026, time.March, 5}, 7, 8, 9}
	if got := dt.String(); got != "2026-03-05T07:08:09" {
		t.Fatalf("DateTime.String = %q", got)
	}
}

func TestParseDateTime(t *testing.T) {
	t.Parallel()

	full := DateTime{Date{2026, time.March, 29}, 2, 30, 15}
	noSeconds := DateTime{Date{2026, time.March, 29}, 2, 30, 0}

	cases := []struct {
		in   string
		want DateTime
	}{
		{"2026-03-29T02:30:15", full},
		{"2026-03-29 02:30:15", full},
		{"2026-03-29T02:30", noSeconds},
		{"2026-03-29 02:30", noSeconds},
	}
	for _, c := range cases {
		got, err := ParseDateTime(c.in)
		if err != nil {
			t.Fatalf("ParseDateTime(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseDateTime(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseDateTimeErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"29/03/2026",
		"2026-03-29",            // date only
		"2026-02-30T00:00:00",   // no such day
		"2026-03-29T02:30:15+01:00", // offsets not accepted here
		"",
	} {
		_, err := ParseDateTime(in)
		if err == nil {
			t.Fatalf("ParseDateTime(%q): expected error", in)
		}
		if !perr.IsCode(err, perr.ErrorCodeInput) {
			t.Fatalf("ParseDateTime(%q): code = %v, want Input", in, perr.CodeOf(err))
		}
	}

	_, err := ParseDateTime("29/03/2026")
	if want := "Invalid local time format '29/03/2026'. Expected: YYYY-MM-DDTHH:MM:SS"; err.Error() != want {
		t.Fatalf("ParseDateTime error = %q, want %q", err, want)
	}
}
