package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/fetchkit/bootstrap"
	apperrors "github.com/kbukum/fetchkit/errors"
	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/httpclient/interceptors"
	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/observability"
	"github.com/kbukum/fetchkit/version"
)

type requestOptions struct {
	data        string
	query       []string
	selectPath  string
	include     bool
	credentials bool
}

func newRequestCommand(root *rootOptions, method string) *cobra.Command {
	opts := &requestOptions{}
	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " <url>",
		Short: "Send a " + method + " request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd.Context(), root, opts, method, args[0])
		},
	}
	flags := cmd.Flags()
	if hasBody(method) {
		flags.StringVarP(&opts.data, "data", "d", "", "Request body; @file reads a file, - reads stdin")
	}
	flags.StringArrayVarP(&opts.query, "query", "q", nil, "Query parameter as key=value, repeatable")
	flags.StringVarP(&opts.selectPath, "select", "s", "", "Print only this gjson path of the response body")
	flags.BoolVarP(&opts.include, "include", "i", false, "Print the status line and response headers")
	flags.BoolVar(&opts.credentials, "credentials", false, "Send and store cookies")
	return cmd
}

func hasBody(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

func runRequest(ctx context.Context, root *rootOptions, opts *requestOptions, method, url string) error {
	call := httpclient.RequestConfig{Method: method, URL: url}
	headers, err := parseHeaders(root.headers)
	if err != nil {
		return withCode(ExitUsageError, err)
	}
	call.Headers = headers
	if call.Params, err = parseQuery(opts.query); err != nil {
		return withCode(ExitUsageError, err)
	}
	if opts.data != "" {
		if call.Data, err = readBody(opts.data); err != nil {
			return withCode(ExitUsageError, err)
		}
	}
	if opts.credentials {
		call.WithCredentials = httpclient.Bool(true)
	}

	cfg, err := loadConfig(root.configFile)
	if err != nil {
		return withCode(ExitConfigError, err)
	}
	if root.baseURL != "" {
		cfg.Client.BaseURL = root.baseURL
	}
	root.applyLogging(cfg)

	app, err := bootstrap.NewApp(cfg, bootstrap.WithVersion(version.Version), bootstrap.WithOutput(io.Discard))
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	telemetry := observability.NewProvider(cfg.Observability, logger.Get(cfg.Name))
	clientName := cfg.Client.Name
	clientComp := httpclient.NewComponent(cfg.Client,
		httpclient.WithLogger(logger.Get(cfg.Name)),
		httpclient.WrapTransport(func(next httpclient.Transport) httpclient.Transport {
			return httpclient.NewMetricsTransport(httpclient.NewTracingTransport(next, clientName), telemetry.Metrics())
		}),
	)
	if err := app.RegisterComponent(telemetry); err != nil {
		return err
	}
	if err := app.RegisterComponent(clientComp); err != nil {
		return err
	}

	err = app.RunTask(ctx, func(ctx context.Context) error {
		client := clientComp.Client()
		configureClient(client, cfg, root.verbose)

		resp, err := client.Request(ctx, call)
		if statusErr, ok := httpclient.AsStatusError(err); ok && statusErr.Response != nil {
			if perr := writeResponse(root, opts, statusErr.Response); perr != nil {
				return perr
			}
			return statusErr.AppError()
		}
		if err != nil {
			if _, ok := apperrors.AsAppError(err); ok {
				return err
			}
			return withCode(ExitNetworkError, err)
		}
		return writeResponse(root, opts, resp)
	})
	return startupCode(err)
}

// startupCode tags errors the task did not classify, which can only come
// from starting or stopping the components.
func startupCode(err error) error {
	if err == nil || classified(err) {
		return err
	}
	return withCode(ExitConfigError, err)
}

func configureClient(client *httpclient.Client, cfg *Config, verbose bool) {
	chain := client.Interceptors().Request
	chain.Use(interceptors.EndpointGuard(), nil)
	chain.Use(interceptors.RequestID(interceptors.DefaultRequestIDHeader), nil)
	chain.Use(defaultHeader("User-Agent", version.UserAgent()), nil)
	if cfg.Token != "" {
		chain.Use(interceptors.Bearer(interceptors.StaticToken(cfg.Token)), nil)
	}
	if verbose {
		interceptors.UseLogging(client, logger.Get(cfg.Name))
	}
}

// defaultHeader sets name unless the request already carries it.
func defaultHeader(name, value string) func(context.Context, *httpclient.RequestConfig) (*httpclient.RequestConfig, error) {
	return func(_ context.Context, cfg *httpclient.RequestConfig) (*httpclient.RequestConfig, error) {
		if _, ok := cfg.Header(name); ok {
			return nil, nil
		}
		out := cfg.Clone()
		if out.Headers == nil {
			out.Headers = map[string]string{}
		}
		out.Headers[name] = value
		return out, nil
	}
}

func (o *rootOptions) applyLogging(cfg *Config) {
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	if o.noColor {
		cfg.Logging.NoColor = true
	}
	cfg.Logging.Writer = o.errOut
}

// parseHeaders turns "Name: value" flags into a header map.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, apperrors.InvalidInput("header", fmt.Sprintf("%q is not in 'Name: value' form", h))
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

// parseQuery turns key=value flags into params. A repeated key becomes a
// list, sent as key=a&key=b.
func parseQuery(raw []string) (httpclient.Params, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	params := httpclient.Params{}
	for _, q := range raw {
		key, value, ok := strings.Cut(q, "=")
		if !ok || key == "" {
			return nil, apperrors.InvalidInput("query", fmt.Sprintf("%q is not in key=value form", q))
		}
		switch prev := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{prev, value}
		case []string:
			params[key] = append(prev, value)
		}
	}
	return params, nil
}

// readBody resolves the --data flag. Valid JSON is sent as JSON, anything
// else as text.
func readBody(data string) (any, error) {
	var raw []byte
	var err error
	switch {
	case data == "-":
		raw, err = io.ReadAll(os.Stdin)
	case strings.HasPrefix(data, "@"):
		raw, err = os.ReadFile(data[1:])
	default:
		raw = []byte(data)
	}
	if err != nil {
		return nil, apperrors.InvalidInput("data", err.Error())
	}
	if json.Valid(raw) {
		return json.RawMessage(raw), nil
	}
	return string(raw), nil
}
