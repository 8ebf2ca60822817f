// README: Config loader; optional .env file, then TRACK_* env vars with defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP struct {
		Addr  string
		Token string
	}
	API struct {
		BaseURL   string
		SocketURL string
		Token     string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey  string
		Timeout time.Duration
	}
	Stream struct {
		HandshakeTimeout time.Duration
		MaxAttempts      int
		BackoffBase      time.Duration
		BackoffMax       time.Duration
	}
	Tracking struct {
		PollInterval       time.Duration
		AnimationWindow    time.Duration
		FrameInterval      time.Duration
		RouteEpsilonMeters float64
		RouteMinInterval   time.Duration
	}
	LogLevel string
}

// Load reads .env when present; a missing file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(), nil
}

func FromEnv() Config {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRACK_HTTP_ADDR", ":8080")
	cfg.HTTP.Token = os.Getenv("TRACK_HTTP_TOKEN")
	cfg.API.BaseURL = envOrDefault("TRACK_API_BASE_URL", "http://localhost:5000/api")
	cfg.API.SocketURL = envOrDefault("TRACK_SOCKET_URL", "ws://localhost:5000/tracking")
	cfg.API.Token = os.Getenv("TRACK_API_TOKEN")
	cfg.DB.DSN = os.Getenv("TRACK_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TRACK_REDIS_ADDR")
	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Maps.Timeout = envOrDefaultMillis("TRACK_DIRECTIONS_TIMEOUT_MS", 4000)
	cfg.Stream.HandshakeTimeout = envOrDefaultMillis("TRACK_HANDSHAKE_TIMEOUT_MS", 5000)
	cfg.Stream.MaxAttempts = envOrDefaultInt("TRACK_RECONNECT_MAX_ATTEMPTS", 8)
	cfg.Stream.BackoffBase = envOrDefaultMillis("TRACK_RECONNECT_BASE_MS", 1000)
	cfg.Stream.BackoffMax = envOrDefaultMillis("TRACK_RECONNECT_MAX_MS", 30000)
	cfg.Tracking.PollInterval = time.Duration(envOrDefaultInt("TRACK_POLL_SECONDS", 15)) * time.Second
	cfg.Tracking.AnimationWindow = envOrDefaultMillis("TRACK_ANIMATION_MS", 2000)
	cfg.Tracking.FrameInterval = envOrDefaultMillis("TRACK_FRAME_MS", 50)
	cfg.Tracking.RouteEpsilonMeters = envOrDefaultFloat("TRACK_ROUTE_EPSILON_M", 25)
	cfg.Tracking.RouteMinInterval = envOrDefaultMillis("TRACK_ROUTE_MIN_INTERVAL_MS", 1000)
	cfg.LogLevel = envOrDefault("TRACK_LOG_LEVEL", "info")
	return cfg
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("TRACK_HTTP_ADDR is empty"))
	}
	if err := checkURL("TRACK_API_BASE_URL", c.API.BaseURL, "http", "https"); err != nil {
		errs = append(errs, err)
	}
	if err := checkURL("TRACK_SOCKET_URL", c.API.SocketURL, "ws", "wss"); err != nil {
		errs = append(errs, err)
	}
	if c.Maps.Timeout <= 0 {
		errs = append(errs, errors.New("TRACK_DIRECTIONS_TIMEOUT_MS must be positive"))
	}
	if c.Stream.HandshakeTimeout <= 0 {
		errs = append(errs, errors.New("TRACK_HANDSHAKE_TIMEOUT_MS must be positive"))
	}
	if c.Stream.MaxAttempts < 0 {
		errs = append(errs, errors.New("TRACK_RECONNECT_MAX_ATTEMPTS must not be negative"))
	}
	if c.Stream.BackoffBase <= 0 || c.Stream.BackoffMax < c.Stream.BackoffBase {
		errs = append(errs, errors.New("reconnect backoff needs 0 < TRACK_RECONNECT_BASE_MS <= TRACK_RECONNECT_MAX_MS"))
	}
	if c.Tracking.PollInterval <= 0 {
		errs = append(errs, errors.New("TRACK_POLL_SECONDS must be positive"))
	}
	if c.Tracking.FrameInterval <= 0 {
		errs = append(errs, errors.New("TRACK_FRAME_MS must be positive"))
	}
	if c.Tracking.RouteEpsilonMeters <= 0 {
		errs = append(errs, errors.New("TRACK_ROUTE_EPSILON_M must be positive"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("TRACK_LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel))
	}
	return errors.Join(errs...)
}

func checkURL(key, raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%s %q is not an absolute URL", key, raw)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("%s scheme must be one of %s", key, strings.Join(schemes, ", "))
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultMillis(key string, def int) time.Duration {
	return time.Duration(envOrDefaultInt(key, def)) * time.Millisecond
}
