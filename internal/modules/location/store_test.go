package location

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ordertrack/internal/modules/status"
	"ordertrack/internal/types"
)

func TestStore_NilBackendsAreNoops(t *testing.T) {
	s := NewStore(nil, nil, 0)
	ctx := context.Background()
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordSample(ctx, "o", "p", Sample{Point: types.Point{Lat: 1, Lng: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordTransition(ctx, "o", status.StageConfirmed, status.StageOutForDelivery, time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordView(ctx, "o", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LastView(ctx, "o"); !errors.Is(err, ErrNoView) {
		t.Errorf("LastView err = %v", err)
	}
}

func TestStore_RedisGeoAndView(t *testing.T) {
	addr := os.Getenv("TRACK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRACK_TEST_REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	s := NewStore(nil, rdb, time.Minute)
	partner := types.ID(fmt.Sprintf("partner_test_%d", time.Now().UnixNano()))
	order := types.ID(fmt.Sprintf("order_test_%d", time.Now().UnixNano()))

	if err := s.RecordSample(ctx, order, partner, Sample{Point: types.Point{Lat: 12.9716, Lng: 77.5946}, RecordedAt: time.Now()}); err != nil {
		t.Fatalf("RecordSample: %v", err)
	}
	pos, err := rdb.GeoPos(ctx, partnersGeoKey, string(partner)).Result()
	if err != nil || len(pos) != 1 || pos[0] == nil {
		t.Fatalf("GeoPos = %v, %v", pos, err)
	}
	if math.Abs(pos[0].Latitude-12.9716) > 1e-4 || math.Abs(pos[0].Longitude-77.5946) > 1e-4 {
		t.Errorf("pos = %+v", pos[0])
	}
	defer rdb.ZRem(ctx, partnersGeoKey, string(partner))

	if _, err := s.LastView(ctx, order); !errors.Is(err, ErrNoView) {
		t.Errorf("LastView before write = %v", err)
	}
	if err := s.RecordView(ctx, order, []byte(`{"stage":"confirmed"}`)); err != nil {
		t.Fatal(err)
	}
	defer rdb.Del(ctx, viewKey(order))
	b, err := s.LastView(ctx, order)
	if err != nil || string(b) != `{"stage":"confirmed"}` {
		t.Errorf("LastView = %s, %v", b, err)
	}
}

func TestStore_PostgresHistory(t *testing.T) {
	dsn := os.Getenv("TRACK_TEST_DSN")
	if dsn == "" {
		t.Skip("TRACK_TEST_DSN not set; skipping integration test")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	s := NewStore(pool, nil, 0)
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}
	order := types.ID(fmt.Sprintf("order_test_%d", time.Now().UnixNano()))
	defer pool.Exec(ctx, `DELETE FROM tracking_samples WHERE order_id = $1`, string(order))
	defer pool.Exec(ctx, `DELETE FROM tracking_transitions WHERE order_id = $1`, string(order))

	t0 := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 3; i++ {
		smp := Sample{Point: types.Point{Lat: 12.9 + float64(i)*0.01, Lng: 77.6}, RecordedAt: t0.Add(time.Duration(i) * time.Second)}
		if err := s.RecordSample(ctx, order, "p-1", smp); err != nil {
			t.Fatalf("RecordSample: %v", err)
		}
	}
	if err := s.RecordTransition(ctx, order, status.StageConfirmed, status.StagePickedUpFromBranch, t0); err != nil {
		t.Fatalf("RecordTransition: %v", err)
	}
	hist, err := s.History(ctx, order, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 3 || hist[0].Lat != 12.9 || !hist[2].RecordedAt.After(hist[0].RecordedAt) {
		t.Errorf("history = %+v", hist)
	}
}
