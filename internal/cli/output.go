package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/httpclient/rest"
)

// writeResponse prints the body to out, and with --include the status line
// and headers to errOut first.
func writeResponse(root *rootOptions, opts *requestOptions, resp *httpclient.Response) error {
	if opts.include {
		writeStatus(root.errOut, resp)
	}
	if opts.selectPath != "" {
		res := rest.Select(resp, opts.selectPath)
		if !res.Exists() {
			return withCode(ExitUsageError, fmt.Errorf("select: no value at %q", opts.selectPath))
		}
		_, err := fmt.Fprintln(root.out, res.String())
		return err
	}
	return writeBody(root.out, resp.Data)
}

func writeStatus(w io.Writer, resp *httpclient.Response) {
	line := fmt.Sprintf("%d %s", resp.Status, resp.StatusText)
	switch {
	case resp.Status >= 500:
		line = color.RedString(line)
	case resp.Status >= 400:
		line = color.YellowString(line)
	default:
		line = color.GreenString(line)
	}
	fmt.Fprintln(w, line)

	names := make([]string, 0, len(resp.Headers))
	for name := range resp.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s: %s\n", color.CyanString(name), resp.Headers[name])
	}
	fmt.Fprintln(w)
}

func writeBody(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	}
	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("format body: %w", err)
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}
