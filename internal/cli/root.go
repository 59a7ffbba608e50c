// Package cli implements the fetchkit command.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	baseURL    string
	headers    []string
	verbose    bool
	noColor    bool

	out    io.Writer
	errOut io.Writer
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "fetchkit",
		Short: "Send HTTP requests through the fetchkit client.",
		Long: `fetchkit sends one request through an interceptor-driven HTTP client
and prints the decoded body. JSON bodies are pretty-printed; anything else is
printed as text.

Configuration comes from fetchkit.yml, .env and FETCHKIT_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file (default: ./fetchkit.yml)")
	flags.StringVar(&opts.baseURL, "base", "", "Base URL for relative paths")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, "Header as 'Name: value', repeatable")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests and responses")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"} {
		root.AddCommand(newRequestCommand(opts, method))
	}
	root.AddCommand(newServeEchoCommand(opts))
	root.AddCommand(newVersionCommand(opts))
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	root := NewRootCommand(out, errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "%s %v\n", color.RedString("error:"), err)
	}
	return exitCode(err)
}
