// README: Tracking recorder backed by Redis GEO (live partner position, last view) and Postgres history.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ordertrack/internal/modules/status"
	"ordertrack/internal/types"
)

const (
	partnersGeoKey = "tracking:partners"
	defaultViewTTL = 30 * time.Minute
)

var ErrNoView = errors.New("no cached view")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tracking_samples (
    id          BIGSERIAL PRIMARY KEY,
    order_id    TEXT NOT NULL,
    partner_id  TEXT NOT NULL DEFAULT '',
    lat         DOUBLE PRECISION NOT NULL,
    lng         DOUBLE PRECISION NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS tracking_samples_order_idx ON tracking_samples (order_id, recorded_at);
CREATE TABLE IF NOT EXISTS tracking_transitions (
    id          BIGSERIAL PRIMARY KEY,
    order_id    TEXT NOT NULL,
    from_stage  TEXT NOT NULL,
    to_stage    TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);`

// Store writes are skipped for whichever backend is nil.
type Store struct {
	db      *pgxpool.Pool
	redis   *redis.Client
	viewTTL time.Duration
}

func NewStore(db *pgxpool.Pool, redis *redis.Client, viewTTL time.Duration) *Store {
	if viewTTL <= 0 {
		viewTTL = defaultViewTTL
	}
	return &Store{db: db, redis: redis, viewTTL: viewTTL}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure tracking schema: %w", err)
	}
	return nil
}

func (s *Store) RecordSample(ctx context.Context, orderID, partnerID types.ID, sample Sample) error {
	if s.redis != nil && partnerID != "" {
		err := s.redis.GeoAdd(ctx, partnersGeoKey, &redis.GeoLocation{
			Name:      string(partnerID),
			Longitude: sample.Lng,
			Latitude:  sample.Lat,
		}).Err()
		if err != nil {
			return fmt.Errorf("geoadd partner %s: %w", partnerID, err)
		}
	}
	if s.db != nil {
		_, err := s.db.Exec(ctx,
			`INSERT INTO tracking_samples (order_id, partner_id, lat, lng, recorded_at) VALUES ($1, $2, $3, $4, $5)`,
			string(orderID), string(partnerID), sample.Lat, sample.Lng, sample.RecordedAt)
		if err != nil {
			return fmt.Errorf("insert sample for %s: %w", orderID, err)
		}
	}
	return nil
}

func (s *Store) RecordTransition(ctx context.Context, orderID types.ID, from, to status.Stage, at time.Time) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO tracking_transitions (order_id, from_stage, to_stage, created_at) VALUES ($1, $2, $3, $4)`,
		string(orderID), string(from), string(to), at)
	if err != nil {
		return fmt.Errorf("insert transition for %s: %w", orderID, err)
	}
	return nil
}

func (s *Store) RecordView(ctx context.Context, orderID types.ID, payload []byte) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Set(ctx, viewKey(orderID), payload, s.viewTTL).Err(); err != nil {
		return fmt.Errorf("cache view for %s: %w", orderID, err)
	}
	return nil
}

func (s *Store) LastView(ctx context.Context, orderID types.ID) ([]byte, error) {
	if s.redis == nil {
		return nil, ErrNoView
	}
	b, err := s.redis.Get(ctx, viewKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoView
	}
	if err != nil {
		return nil, fmt.Errorf("read view for %s: %w", orderID, err)
	}
	return b, nil
}

// History returns the recorded samples for an order, oldest first.
func (s *Store) History(ctx context.Context, orderID types.ID, limit int) ([]Sample, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.db.Query(ctx,
		`SELECT lat, lng, recorded_at FROM tracking_samples WHERE order_id = $1 ORDER BY recorded_at ASC LIMIT $2`,
		string(orderID), limit)
	if err != nil {
		return nil, fmt.Errorf("query samples for %s: %w", orderID, err)
	}
	defer rows.Close()
	var out []Sample
	for rows.Next() {
		var smp Sample
		if err := rows.Scan(&smp.Lat, &smp.Lng, &smp.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, smp)
	}
	return out, rows.Err()
}

func viewKey(orderID types.ID) string {
	return "tracking:order:" + string(orderID) + ":view"
}
