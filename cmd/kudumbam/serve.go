package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sid-0307/Kudumbam/internal/infrastructure/httpapi"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/telemetry"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Starts the HTTP API on the configured address and serves until interrupted.

Examples:
  kudumbam serve
  kudumbam serve --addr :8080
  DATABASE_URL=postgres://localhost/kudumbam kudumbam serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}

func runServe(ctx context.Context, addr string) error {
	return withDeps(ctx, func(d *Deps) error {
		cfg := d.Config
		if addr != "" {
			cfg.Server.Addr = addr
		}

		shutdownTracing, err := telemetry.Setup(cfg.Tracing, os.Stderr)
		if err != nil {
			return fmt.Errorf("setting up tracing: %w", err)
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				d.Logger.Warn("flushing traces", "error", err)
			}
		}()

		opts := httpapi.RouterOptions{
			Server:    cfg.Server,
			RateLimit: cfg.RateLimit,
			Logger:    d.Logger,
		}
		if cfg.Tracing.Enabled {
			opts.ServiceName = cfg.Tracing.ServiceName
		}

		router, err := httpapi.NewRouter(opts, d.HTTPHandlers())
		if err != nil {
			return fmt.Errorf("building router: %w", err)
		}

		srv := httpapi.NewServer(cfg.Server, router, d.Logger)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		d.Logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return <-errCh
	})
}
