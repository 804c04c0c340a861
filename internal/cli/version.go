package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"tzbucket/internal/core/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			bi := version.Info("tzbucket")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", bi.Service, bi.Version)
			fmt.Fprintf(out, "  commit:  %s\n", bi.Commit)
			fmt.Fprintf(out, "  built:   %s\n", bi.Date)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
