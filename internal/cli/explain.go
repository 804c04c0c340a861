package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tzbucket/internal/core/localtime"
	perr "tzbucket/internal/platform/errors"
)

func newExplainCmd() *cobra.Command {
	var (
		tzName      string
		localRaw    string
		nonexistent string
		ambiguous   string
		outFormat   string
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain local time resolution (DST handling)",
		Long: `Classify a local wall-clock time as normal, ambiguous (DST fall back), or
nonexistent (DST spring forward), and resolve it per the given policies.

Ambiguous and nonexistent times are errors by default; pass
--policy-ambiguous=first|second or --policy-nonexistent=shift_forward to
pick an instant instead.`,
		Example: `  tzbucket explain -t Europe/Berlin --local 2026-03-29T02:30:00
  tzbucket explain -t Europe/Berlin --local 2026-10-25T02:30:00 --policy-ambiguous first
  tzbucket explain -t America/New_York --local 2026-03-08T02:30:00 --policy-nonexistent shift_forward`,
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

			if err := runExplain(cmd, of, tzName, localRaw, nonexistent, ambiguous); err != nil {
				return fail(cmd, err, of)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tzName, "tz", "t", "", "IANA timezone")
	cmd.Flags().StringVar(&localRaw, "local", "", "local time string (without offset, e.g., 2026-03-29T02:30:00)")
	cmd.Flags().StringVar(&nonexistent, "policy-nonexistent", "error", "policy for nonexistent times: error, shift_forward")
	cmd.Flags().StringVar(&ambiguous, "policy-ambiguous", "error", "policy for ambiguous times: error, first, second")
	cmd.Flags().StringVar(&outFormat, "output-format", "json", "output format: json, text")
	_ = cmd.MarkFlagRequired("tz")
	_ = cmd.MarkFlagRequired("local")
	return cmd
}

func runExplain(cmd *cobra.Command, of outputFormat, tzName, localRaw, nonexistent, ambiguous string) error {
	z, err := localtime.LoadZone(tzName)
	if err != nil {
		return err
	}
	pn, err := localtime.ParseNonexistentPolicy(nonexistent)
	if err != nil {
		return err
	}
	pa, err := localtime.ParseAmbiguousPolicy(ambiguous)
	if err != nil {
		return err
	}
	w, err := localtime.ParseDateTime(localRaw)
	if err != nil {
		return err
	}

	exp, err := localtime.Explain(w, z, pn, pa)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if of == outputJSON {
		b, err := json.MarshalIndent(exp, "", "  ")
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeRuntime, "Failed to serialize JSON")
		}
		fmt.Fprintln(out, string(b))
		return nil
	}
	fmt.Fprintf(out, "Local time: %s\n", exp.LocalTime)
	fmt.Fprintf(out, "Timezone: %s\n", exp.TZ)
	fmt.Fprintf(out, "Status: %s\n", exp.Status)
	if exp.Resolution != nil {
		fmt.Fprintf(out, "Resolution: %s -> %s\n", exp.Resolution.Policy, exp.Resolution.Result)
	}
	return nil
}
