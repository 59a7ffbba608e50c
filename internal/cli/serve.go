package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/fetchkit/bootstrap"
	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/server"
	"github.com/kbukum/fetchkit/version"
)

func newServeEchoCommand(root *rootOptions) *cobra.Command {
	var host string
	var port int
	cmd := &cobra.Command{
		Use:   "serve-echo",
		Short: "Run an echo server that reflects every request as JSON",
		Long: `serve-echo answers every request with the method, path, query, headers,
cookies and body it received. /status/<code> replies with that status and
/cookies/set?name=value sets cookies. It speaks HTTP/1.1 and h2c.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configFile)
			if err != nil {
				return withCode(ExitConfigError, err)
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cfg.Logging.Level == "warn" {
				cfg.Logging.Level = "info"
			}
			root.applyLogging(cfg)

			app, err := bootstrap.NewApp(cfg, bootstrap.WithVersion(version.Version), bootstrap.WithOutput(root.errOut))
			if err != nil {
				return withCode(ExitConfigError, err)
			}
			srv := server.New(cfg.Server, logger.Get(cfg.Name))
			if err := app.RegisterComponent(srv); err != nil {
				return err
			}
			app.OnReady(func(context.Context) error {
				_, err := fmt.Fprintf(root.out, "listening on %s\n", srv.URL())
				return err
			})
			return startupCode(app.Run(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Interface to bind")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on; 0 picks a free port")
	return cmd
}
