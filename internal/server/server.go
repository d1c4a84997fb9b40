// Package server provides the main server initialization and run logic.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mightywomble/linksdashboard/internal/api"
	"github.com/mightywomble/linksdashboard/internal/auth"
	"github.com/mightywomble/linksdashboard/internal/chat"
	"github.com/mightywomble/linksdashboard/internal/config"
	"github.com/mightywomble/linksdashboard/internal/feeds"
	"github.com/mightywomble/linksdashboard/internal/logger"
	"github.com/mightywomble/linksdashboard/internal/store"
)

// Config holds the server startup options.
type Config struct {
	Port    int    // Port to run the server on (0 = use config default)
	Version string // Version string to report
}

// Run starts the server with the given configuration and blocks until the
// context is canceled.
func Run(ctx context.Context, cfg Config) error {
	appCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Port != 0 {
		appCfg.Server.Port = cfg.Port
	}

	logger.Init(appCfg.Log.Format, appCfg.Log.Level)
	slog.Info("Starting Linkboard server", "version", cfg.Version, "mode", appCfg.Server.Mode)

	// The upload and icon directories must exist before the first request.
	for _, dir := range []string{appCfg.Storage.UploadDir, appCfg.Storage.IconsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	st := store.New(appCfg.Storage.ConfigFile)
	if _, err := st.Load(); err != nil {
		return fmt.Errorf("failed to initialize config document: %w", err)
	}
	slog.Info("Config document initialized", "path", st.Path())

	sessions := auth.NewSessions(appCfg.Auth.SessionSecret, appCfg.Auth.SessionDuration)
	fetcher := feeds.NewFetcher(appCfg.Feeds.Timeout, appCfg.Feeds.MaxConcurrent)
	proxy := chat.New(appCfg.Chat.Timeout)

	router := api.NewRouter(appCfg, st, sessions, fetcher, proxy)

	addr := fmt.Sprintf(":%d", appCfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Linkboard exited")
	return nil
}

// RunWithSignalHandling starts the server and handles OS signals for
// graceful shutdown.
func RunWithSignalHandling(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, cfg)
	}()

	select {
	case sig := <-quit:
		slog.Info("Received signal", "signal", sig)
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}
