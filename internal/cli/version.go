package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/fetchkit/version"
)

func newVersionCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Fprintf(opts.out, "fetchkit version %s\n", info)
			if info.BuildTime != "" {
				fmt.Fprintf(opts.out, "Built: %s\n", info.BuildTime)
			}
			if info.GoVersion != "" {
				fmt.Fprintf(opts.out, "Go: %s\n", info.GoVersion)
			}
		},
	}
}
