package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tzbucket/internal/core/bucket"
	"tzbucket/internal/core/localtime"
	"tzbucket/internal/core/timeparse"
	perr "tzbucket/internal/platform/errors"
)

func newRangeCmd() *cobra.Command {
	var (
		tzName    string
		interval  string
		weekStart string
		startRaw  string
		endRaw    string
		outFormat string
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Generate all buckets in a time range",
		Long: `Enumerate every bucket overlapping the half-open UTC range [start, end).

Buckets are emitted in ascending start order and deduplicated by key, so a
range that begins mid-week still yields that week exactly once.`,
		Example: `  tzbucket range -t Europe/Berlin --start 2026-03-28T00:00:00Z --end 2026-03-31T00:00:00Z
  tzbucket range -t UTC -i month --start 2026-01-01T00:00:00Z --end 2026-06-01T00:00:00Z --output-format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return fail(cmd, err, outputFormatHint(outFormat))
			}
			rawOut := st.str(cmd, "output-format", "OUTPUT_FORMAT", st.file.OutputFormat, outFormat)
			of, err := parseOutputFormat(rawOut)
			if err != nil {
				return fail(cmd, err, outputFormatHint(rawOut))
			}

			iv := st.str(cmd, "interval", "INTERVAL", st.file.Interval, interval)
			ws := st.str(cmd, "week-start", "WEEK_START", st.file.WeekStart, weekStart)
			if err := runRange(cmd, of, tzName, iv, ws, startRaw, endRaw); err != nil {
				return fail(cmd, err, of)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tzName, "tz", "t", "", "IANA timezone")
	cmd.Flags().StringVarP(&interval, "interval", "i", "day", "bucket interval: day, week, month")
	cmd.Flags().StringVar(&weekStart, "week-start", "monday", "week start day: monday or sunday")
	cmd.Flags().StringVar(&startRaw, "start", "", "start of range (inclusive, RFC3339)")
	cmd.Flags().StringVar(&endRaw, "end", "", "end of range (exclusive, RFC3339)")
	cmd.Flags().StringVar(&outFormat, "output-format", "json", "output format: json, text")
	_ = cmd.MarkFlagRequired("tz")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func runRange(cmd *cobra.Command, of outputFormat, tzName, interval, weekStart, startRaw, endRaw string) error {
	z, err := localtime.LoadZone(tzName)
	if err != nil {
		return err
	}
	iv, err := bucket.ParseInterval(interval)
	if err != nil {
		return err
	}
	ws, err := bucket.ParseWeekStart(weekStart)
	if err != nil {
		return err
	}

	startUTC, err := timeparse.Parse(startRaw, timeparse.RFC3339)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInput, "Invalid start timestamp")
	}
	endUTC, err := timeparse.Parse(endRaw, timeparse.RFC3339)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInput, "Invalid end timestamp")
	}
	if !startUTC.Before(endUTC) {
		return perr.Inputf("Invalid range: start '%s' must be earlier than end '%s'", startRaw, endRaw)
	}

	buckets, err := bucket.Enumerate(startUTC, endUTC, z, iv, ws)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if of == outputJSON {
		b, err := json.MarshalIndent(buckets, "", "  ")
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeRuntime, "Failed to serialize JSON")
		}
		fmt.Fprintln(out, string(b))
		return nil
	}
	for _, b := range buckets {
		fmt.Fprintf(out, "%s: %s to %s\n", b.Key, b.StartLocal, b.EndLocal)
	}
	return nil
}
