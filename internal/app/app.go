// README: Wiring shared by the binaries; builds tracking deps from config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ordertrack/internal/config"
	"ordertrack/internal/infra"
	"ordertrack/internal/maps"
	"ordertrack/internal/modules/location"
	"ordertrack/internal/modules/order"
	"ordertrack/internal/modules/tracking"
)

const viewTTL = 24 * time.Hour

type App struct {
	Deps   tracking.Deps
	Config tracking.Config
	// Store is nil unless Postgres or Redis is configured.
	Store *location.Store

	closers []func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}
	orders := order.NewClient(cfg.API.BaseURL, cfg.API.Token, order.WithLogger(logger))

	var directions maps.Directions = maps.NewOrderServerDirections(orders)
	if cfg.Maps.APIKey != "" {
		g, err := maps.NewGoogleDirections(cfg.Maps.APIKey, "en", "in")
		if err != nil {
			return nil, fmt.Errorf("google directions: %w", err)
		}
		directions = g
	}

	header := http.Header{}
	if cfg.API.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.API.Token)
	}
	streamCfg := location.StreamConfig{
		URL:              cfg.API.SocketURL,
		Header:           header,
		HandshakeTimeout: cfg.Stream.HandshakeTimeout,
		BackoffBase:      cfg.Stream.BackoffBase,
		BackoffMax:       cfg.Stream.BackoffMax,
		MaxAttempts:      cfg.Stream.MaxAttempts,
	}

	a.Deps = tracking.Deps{
		Orders:  orders,
		Routes:  maps.NewEstimator(directions, cfg.Maps.Timeout, logger),
		Streams: func() tracking.Stream { return location.NewStream(streamCfg, logger) },
		Sink:    tracking.NewLogSink(logger),
		Logger:  logger,
	}

	db, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}
	if db != nil {
		a.closers = append(a.closers, db.Close)
	}
	if rdb != nil {
		a.closers = append(a.closers, func() { _ = rdb.Close() })
	}
	if db != nil || rdb != nil {
		a.Store = location.NewStore(db, rdb, viewTTL)
		if err := a.Store.EnsureSchema(ctx); err != nil {
			a.Close()
			return nil, err
		}
		a.Deps.Recorder = a.Store
		logger.Info("recorder_enabled", "postgres", db != nil, "redis", rdb != nil)
	}

	tc := tracking.DefaultConfig()
	tc.PollInterval = cfg.Tracking.PollInterval
	tc.AnimationWindow = cfg.Tracking.AnimationWindow
	tc.FrameInterval = cfg.Tracking.FrameInterval
	tc.RouteEpsilonMeters = cfg.Tracking.RouteEpsilonMeters
	tc.RouteMinInterval = cfg.Tracking.RouteMinInterval
	a.Config = tc
	return a, nil
}

// Close releases the storage backends.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
