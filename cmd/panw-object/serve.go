package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/weirlive/panw-object/internal/api"
	"github.com/weirlive/panw-object/internal/config"
	"github.com/weirlive/panw-object/internal/logging"
	"github.com/weirlive/panw-object/internal/service"
	"github.com/weirlive/panw-object/internal/synthesizer"
	"github.com/weirlive/panw-object/internal/web"
	"go.uber.org/zap"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web form and JSON API",
		Long: `Starts the HTTP server. Configuration comes from the environment
(SERVER_HOST, SERVER_PORT, API_KEYS, OIDC_*, LOG_LEVEL, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), root)
		},
	}
}

func runServe(ctx context.Context, root *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg := cfg.Log.Logging()
	if root.verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator := service.NewGenerator(synthesizer.New(cfg.Synth.Policy()), logger)

	oidc, err := web.NewOIDCComponents(ctx, cfg.OIDC)
	if err != nil {
		return fmt.Errorf("failed to initialize OIDC: %w", err)
	}
	if oidc != nil {
		logger.Info("OIDC sign-in enabled", zap.String("issuer", cfg.OIDC.IssuerURL))
	}

	keys := cfg.Auth.Keys()
	if len(keys) == 0 {
		logger.Warn("no API keys configured, the JSON API is open")
	}

	router := api.NewRouter(generator, keys, logger, web.NewRouter(generator, logger, oidc))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
