// Package cli wires the tzbucket command tree.
//
// Each subcommand resolves its output format first, runs, and renders its
// own failure so that errors honor --output-format. Execute maps the
// rendered failure to a process exit code.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	perr "tzbucket/internal/platform/errors"
	"tzbucket/internal/platform/logger"
)

// New builds a fresh root command tree
// A new tree per invocation keeps flag state isolated between runs, which
// the in-process tests rely on
func New() *cobra.Command {
	root := &cobra.Command{
		Use:   "tzbucket",
		Short: "DST-safe time bucketing tool",
		Long: `tzbucket groups timestamps into day, week, or month buckets in a target
IANA timezone. Bucket boundaries are civil-calendar midnights resolved per
zone rules, never fixed 24h strides, so DST days keep their real 23h or
25h length.

Option defaults may come from flags, TZBUCKET_* environment variables, or
a TOML file (--config, $TZBUCKET_CONFIG, or ~/.config/tzbucket/config.toml),
in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "defaults file (TOML)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			logger.Init(logger.Options{Level: "debug", Format: "console", Service: "tzbucket"})
		}
	}

	root.AddCommand(newBucketCmd())
	root.AddCommand(newRangeCmd())
	root.AddCommand(newExplainCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI against the os streams and returns the exit code
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run is the testable entry point: fresh tree, injected streams, error to
// exit code mapping
func run(args []string, in io.Reader, out, errw io.Writer) int {
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errw)

	err := cmd.Execute()
	if err == nil {
		return perr.ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	// cobra's own failures (unknown flags, missing required flags) arrive
	// here unrendered; they are input errors
	fmt.Fprintf(errw, "Error: %s\n", err)
	return perr.ExitInputError
}

// exitError carries the exit code of an already-rendered failure through
// cobra's error return
type exitError struct{ code int }

func (e *exitError) Error() string { return "" }

// fail renders err in the requested format and wraps its exit code
func fail(cmd *cobra.Command, err error, of outputFormat) error {
	renderError(cmd.ErrOrStderr(), err, of)
	return &exitError{code: perr.Exit(err)}
}
