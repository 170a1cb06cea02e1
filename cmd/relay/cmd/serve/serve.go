package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transcribe-relay/cmd/relay/cmd/shared"
	"transcribe-relay/internal/app"
)

var shutdownTimeout time.Duration

func init() {
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second,
		"how long to wait for in-flight requests when stopping")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP transcription service",
	Long: `Run the HTTP transcription service.

- GET  /            service status message
- POST /transcribe  multipart upload (field "file"), returns {"transcript": "..."}
- GET  /health      health check
- GET  /metrics     Prometheus metrics
- GET  /swagger/    API documentation`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := shared.Bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		srv, err := app.InitializeServer(cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize server", zap.Error(err))
			return err
		}

		if err := srv.Start(); err != nil {
			logger.Error("Failed to start server", zap.Error(err))
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
