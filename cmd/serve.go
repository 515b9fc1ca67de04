package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/madlig/mygameon/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MyGameON HTTP API",
	Long: `Serve tag normalization, priority scoring and the request board over HTTP.

Endpoints:
  POST /api/v1/tags/normalize   - normalize one record or an array of records
  POST /api/v1/tags/chips       - normalized tags plus card chips
  GET  /api/v1/tags/vocabulary  - the canonical vocabulary
  POST /api/v1/priority         - score a request
  GET  /api/v1/priority/config  - the effective scoring parameters
  GET  /api/v1/requests/board   - ranked stored requests
  GET  /healthz                 - liveness probe
  GET  /metrics                 - Prometheus metrics

Examples:
  mygameon serve --addr :9000
  curl -s localhost:9000/api/v1/priority -d '{"requestCount": 80, "estimatedSize": 5}'`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(cfg, storeManager, logger).Start(ctx)
	},
}
