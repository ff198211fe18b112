package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/cinedb/pkg/api"
)

func newServeCmd(app *cli) *cobra.Command {
	var (
		apiKey string
		bind   string
		port   int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the cinedb REST API server.

The API key comes from the config file written by 'cinedb init' unless
--api-key is given. Metrics are served at /metrics.

Examples:
  cinedb serve
  cinedb serve --api-key=mysecretkey --port=9000 --backend=sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			if cmd.Flags().Changed("api-key") {
				cfg.Security.APIKey = apiKey
			}
			if cmd.Flags().Changed("bind") {
				cfg.Bind = bind
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
				return fmt.Errorf("no API key configured: run 'cinedb init' or pass --api-key")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.say(cmd, "Metrics available at: http://%s/metrics\n", cfg.Addr())
			starter := app.container.GetServerFactory().CreateServerStarter()
			return starter.StartServer(ctx, app.store, api.ServerConfig{
				Addr:   cfg.Addr(),
				APIKey: cfg.Security.APIKey,
				Logger: app.logger,
			})
		},
	}

	serveCmd.Flags().StringVar(&apiKey, "api-key", "", "API key for authentication (overrides config)")
	serveCmd.Flags().StringVar(&bind, "bind", "", "address to bind (overrides config)")
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return serveCmd
}
