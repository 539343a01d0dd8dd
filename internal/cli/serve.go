package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/su-record/hi-gcloud/internal/config"
	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
	"github.com/su-record/hi-gcloud/internal/runtime"
	"github.com/su-record/hi-gcloud/internal/server"
	"github.com/su-record/hi-gcloud/internal/telemetry"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	logger := newLogger()

	if err := telemetry.Init(server.Version); err != nil {
		logger.Warn("sentry init failed", "err", err)
	}
	defer telemetry.Flush()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := config.NewOSStore(cwd)
	runner := gcloud.NewCLI()
	resolver := resolve.New(store, runner)
	rtInfo := runtime.Detect()

	logger.Info("starting hi-gcloud", "version", server.Version, "dir", cwd, "cloud_shell", rtInfo.CloudShell)

	srv := server.New(store, runner, resolver, rtInfo)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		telemetry.CaptureError(err)
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
