package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/observability"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP dashboard API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracer(ctx, cfg.Tracing.ServiceName, os.Stderr)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	return server.New(cfg, logger).Run(ctx)
}
