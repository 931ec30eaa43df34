package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gamegen/internal/config"
	"gamegen/internal/server"
	"gamegen/internal/util"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API exposing POST /generate-game and GET /healthz.

Listens on PORT (default 5000). The process exits non-zero at startup when the
generator cannot be configured, e.g. GEMINI_API_KEY is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			util.InitLogger(cfg.LogLevel, "gamegen")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

// serve blocks until ctx is cancelled or the listener fails.
func serve(ctx context.Context, cfg config.FileConfig) error {
	core, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	httpServer := server.New(server.Config{App: core})

	addr := ":" + cfg.Port
	// No WriteTimeout: generation time is bounded only by the provider client.
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpServer.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("gamegen server listening", "addr", addr,
			"provider", cfg.Generation.Provider, "model", cfg.Generation.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "err", err)
			return err
		}
		slog.Info("gamegen server stopped")
		return nil
	})
	return g.Wait()
}
