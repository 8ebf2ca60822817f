package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
)

func TestLoggerShape(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger := newLogger(&buf, "tracker-api", "warn")
	logger.Info("hidden")
	logger.Warn("ws_reconnect_scheduled", "order_id", "o-1")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("want a single JSON line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "ws_reconnect_scheduled" || line["service"] != "tracker-api" || line["order_id"] != "o-1" {
		t.Errorf("line = %v", line)
	}
	if _, ok := line["timestamp"]; !ok {
		t.Errorf("timestamp key missing: %v", line)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warn": slog.LevelWarn,
		"error": slog.LevelError, "": slog.LevelInfo, "verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOptionalBackends(t *testing.T) {
	ctx := context.Background()
	if db, err := NewDB(ctx, ""); db != nil || err != nil {
		t.Errorf("empty dsn: %v %v", db, err)
	}
	if rdb, err := NewRedis(ctx, ""); rdb != nil || err != nil {
		t.Errorf("empty addr: %v %v", rdb, err)
	}
}

func TestBackendsLive(t *testing.T) {
	ctx := context.Background()
	if dsn := os.Getenv("TRACK_TEST_DSN"); dsn != "" {
		db, err := NewDB(ctx, dsn)
		if err != nil {
			t.Fatalf("NewDB: %v", err)
		}
		db.Close()
	}
	if addr := os.Getenv("TRACK_TEST_REDIS_ADDR"); addr != "" {
		rdb, err := NewRedis(ctx, addr)
		if err != nil {
			t.Fatalf("NewRedis: %v", err)
		}
		_ = rdb.Close()
	} else {
		t.Skip("TRACK_TEST_REDIS_ADDR not set")
	}
}
