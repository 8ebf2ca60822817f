// README: Entry point; loads config, wires clients and the session manager, serves the tracking API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"ordertrack/internal/app"
	"ordertrack/internal/config"
	httptransport "ordertrack/internal/http"
	"ordertrack/internal/infra"
	"ordertrack/internal/modules/quote"
	"ordertrack/internal/modules/tracking"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	logger := infra.NewLogger("tracker-api", cfg.LogLevel)
	if err != nil {
		logger.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("config_invalid", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("wiring_failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	manager := tracking.NewManager(ctx, a.Deps, a.Config)
	srv := httptransport.NewServer(httptransport.ServerDeps{
		Sessions: manager,
		Cache:    cacheOf(a),
		Quotes:   quote.NewService(),
		Logger:   logger,
		Token:    cfg.HTTP.Token,
	})

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http_listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown_started", "sessions", manager.Len())
		// Closing sessions ends their SSE streams so Shutdown is not held open.
		manager.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server_stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown_complete")
}

// cacheOf keeps a nil store from becoming a non-nil interface.
func cacheOf(a *app.App) httptransport.ViewCache {
	if a.Store == nil {
		return nil
	}
	return a.Store
}
