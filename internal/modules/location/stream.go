// README: Live channel client; one websocket subscription per order with capped exponential reconnect.
package location

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"ordertrack/internal/modules/status"
	"ordertrack/internal/types"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 25 * time.Second
)

var (
	ErrStreamClosed = errors.New("stream closed")
	ErrOtherOrder   = errors.New("stream already open for another order")
	ErrMissingURL   = errors.New("stream url is required")
)

// StreamConfig.MaxAttempts is the number of consecutive failed connects before the
// stream gives up; 0 retries forever.
type StreamConfig struct {
	URL              string
	Header           http.Header
	HandshakeTimeout time.Duration
	BackoffBase      time.Duration
	BackoffMax       time.Duration
	MaxAttempts      int
	ReadTimeout      time.Duration
	PingInterval     time.Duration
}

func (c StreamConfig) withDefaults() StreamConfig {
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = 5 * time.Second
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = time.Second
	}
	if c.BackoffMax <= 0 {
		c.BackoffMax = 30 * time.Second
	}
	if c.BackoffMax < c.BackoffBase {
		c.BackoffMax = c.BackoffBase
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = wsReadTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = wsPingInterval
	}
	return c
}

// Stream delivers position, pickup, status and connection events on Events().
// The channel is closed once the stream stops: after Close, after a terminal
// status was forwarded, or after the retry budget is exhausted.
type Stream struct {
	cfg    StreamConfig
	logger *slog.Logger
	dialer *websocket.Dialer
	events chan Event
	done   chan struct{}

	mu      sync.Mutex
	orderID types.ID
	opened  bool
	closed  bool
	cancel  context.CancelFunc
}

func NewStream(cfg StreamConfig, logger *slog.Logger) *Stream {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Stream{
		cfg:    cfg,
		logger: logger,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		events: make(chan Event, 32),
		done:   make(chan struct{}),
	}
}

func (s *Stream) Events() <-chan Event { return s.events }

// Done is closed when the run loop has exited.
func (s *Stream) Done() <-chan struct{} { return s.done }

// Open starts the connection loop and returns immediately. Opening again for the
// same order is a no-op.
func (s *Stream) Open(ctx context.Context, orderID types.ID) error {
	if s.cfg.URL == "" {
		return ErrMissingURL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStreamClosed
	}
	if s.opened {
		if s.orderID == orderID {
			return nil
		}
		return ErrOtherOrder
	}
	ctx, cancel := context.WithCancel(ctx)
	s.orderID, s.opened, s.cancel = orderID, true, cancel
	go s.run(ctx, orderID)
	return nil
}

// Close stops the loop, closes the socket and waits for the loop to exit. Safe to
// call more than once and before Open.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	opened, cancel := s.opened, s.cancel
	s.mu.Unlock()

	if !opened {
		close(s.events)
		close(s.done)
		return nil
	}
	cancel()
	<-s.done
	return nil
}

func (s *Stream) run(ctx context.Context, orderID types.ID) {
	defer close(s.done)
	defer close(s.events)

	log := s.logger.With("order_id", orderID)
	backoff := s.cfg.BackoffBase
	failures := 0
	for {
		if ctx.Err() != nil {
			return
		}
		s.emit(ctx, Event{Kind: KindConnection, Connection: Connecting})

		conn, err := s.dial(ctx)
		if err == nil {
			err = s.join(conn, orderID)
			if err != nil {
				_ = conn.Close()
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			log.Warn("ws_connect_failed", "attempt", failures, "error", err)
			if s.cfg.MaxAttempts > 0 && failures >= s.cfg.MaxAttempts {
				log.Error("ws_retry_exhausted", "attempts", failures)
				s.emit(ctx, Event{Kind: KindConnection, Connection: Disconnected, Exhausted: true})
				return
			}
			s.emit(ctx, Event{Kind: KindConnection, Connection: Disconnected})
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, s.cfg.BackoffMax)
			continue
		}

		failures = 0
		backoff = s.cfg.BackoffBase
		log.Info("ws_connected")
		s.emit(ctx, Event{Kind: KindConnection, Connection: Connected})

		terminal := s.readLoop(ctx, conn, orderID, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		s.emit(ctx, Event{Kind: KindConnection, Connection: Disconnected})
		if terminal {
			log.Info("ws_closed_terminal")
			return
		}
		log.Warn("ws_disconnected")
		if !sleepCtx(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff, s.cfg.BackoffMax)
	}
}

func (s *Stream) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := s.dialer.DialContext(ctx, s.cfg.URL, s.cfg.Header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

func (s *Stream) join(conn *websocket.Conn, orderID types.ID) error {
	payload, err := JoinRoomFrame(orderID)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// readLoop returns true when a terminal status was forwarded. Only the run
// goroutine writes data frames; pings and the close frame go through WriteControl.
func (s *Stream) readLoop(ctx context.Context, conn *websocket.Conn, orderID types.ID, log *slog.Logger) bool {
	stop := make(chan struct{})
	defer close(stop)

	extend := func() { _ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)) }
	extend()
	conn.SetPongHandler(func(string) error { extend(); return nil })
	conn.SetPingHandler(func(data string) error {
		extend()
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(wsWriteTimeout))
	})

	go func() {
		ticker := time.NewTicker(s.cfg.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client closing"),
					time.Now().Add(time.Second))
				_ = conn.Close()
				return
			case <-ticker.C:
				_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout))
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				log.Warn("ws_read_failed", "error", err)
			}
			return false
		}
		extend()

		ev, err := Decode(msg, time.Now())
		if err != nil {
			log.Warn("ws_bad_frame", "error", err)
			continue
		}
		if ev.OrderID != "" && ev.OrderID != orderID {
			continue
		}
		if !s.emit(ctx, ev) {
			return false
		}
		if ev.Kind == KindStatus && ev.Status != "" && status.Classify(ev.Status).Terminal() {
			return true
		}
	}
}

func (s *Stream) emit(ctx context.Context, ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func nextBackoff(cur, max time.Duration) time.Duration {
	next := cur * 2
	if next > max {
		return max
	}
	return next
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
