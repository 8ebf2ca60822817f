// README: Collaborators a tracking session is constructed with; nothing is reached through globals.
package tracking

import (
	"context"
	"log/slog"
	"time"

	"ordertrack/internal/maps"
	"ordertrack/internal/modules/location"
	"ordertrack/internal/modules/order"
	"ordertrack/internal/modules/status"
	"ordertrack/internal/types"
)

type OrderService interface {
	Get(ctx context.Context, id types.ID) (*order.Order, error)
	ConfirmReceipt(ctx context.Context, id types.ID) error
}

// Stream is the live channel for one order; location.Stream implements it.
type Stream interface {
	Open(ctx context.Context, orderID types.ID) error
	Events() <-chan location.Event
	Close() error
}

type StreamFactory func() Stream

type RouteEstimator interface {
	Estimate(ctx context.Context, q maps.Query) maps.RoutePlan
}

type NotificationSink interface {
	Notify(ctx context.Context, n Notification)
}

// Recorder persists tracking history; location.Store implements it.
type Recorder interface {
	RecordSample(ctx context.Context, orderID, partnerID types.ID, sample location.Sample) error
	RecordTransition(ctx context.Context, orderID types.ID, from, to status.Stage, at time.Time) error
	RecordView(ctx context.Context, orderID types.ID, payload []byte) error
}

type Deps struct {
	Orders OrderService
	Routes RouteEstimator
	// Streams may be nil; the session then tracks by polling only.
	Streams  StreamFactory
	Sink     NotificationSink
	Recorder Recorder
	Logger   *slog.Logger
	Clock    func() time.Time
}

type Config struct {
	PollInterval       time.Duration
	AnimationWindow    time.Duration
	FrameInterval      time.Duration
	RouteEpsilonMeters float64
	RouteMinInterval   time.Duration
	LoadRetryBase      time.Duration
	LoadRetryMax       time.Duration
	// StreamETAMaxAge bounds how long a stream-supplied ETA wins over the route duration.
	StreamETAMaxAge time.Duration
	OutboxSize      int
	// FinishedRetention keeps a terminal session reachable through the Manager so
	// late readers still get its final view. Negative drops it as soon as it ends.
	FinishedRetention time.Duration
}

func DefaultConfig() Config {
	return Config{
		PollInterval:       15 * time.Second,
		AnimationWindow:    location.DefaultAnimationWindow,
		FrameInterval:      50 * time.Millisecond,
		RouteEpsilonMeters: 25,
		RouteMinInterval:   time.Second,
		LoadRetryBase:      time.Second,
		LoadRetryMax:       30 * time.Second,
		StreamETAMaxAge:    time.Minute,
		OutboxSize:         64,
		FinishedRetention:  time.Minute,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.AnimationWindow < 0 {
		c.AnimationWindow = d.AnimationWindow
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	if c.RouteEpsilonMeters <= 0 {
		c.RouteEpsilonMeters = d.RouteEpsilonMeters
	}
	if c.RouteMinInterval < 0 {
		c.RouteMinInterval = 0
	}
	if c.LoadRetryBase <= 0 {
		c.LoadRetryBase = d.LoadRetryBase
	}
	if c.LoadRetryMax < c.LoadRetryBase {
		c.LoadRetryMax = c.LoadRetryBase
	}
	if c.StreamETAMaxAge <= 0 {
		c.StreamETAMaxAge = d.StreamETAMaxAge
	}
	if c.OutboxSize <= 0 {
		c.OutboxSize = d.OutboxSize
	}
	if c.FinishedRetention == 0 {
		c.FinishedRetention = d.FinishedRetention
	}
	return c
}
