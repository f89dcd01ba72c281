// README: Settings store backed by PostgreSQL with a Redis read-through cache.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"offerwise/internal/modules/evaluator"
	"offerwise/internal/types"
)

const cacheKeyPrefix = "settings:driver:%s"

type Store struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewStore(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) *Store {
	return &Store{db: db, redis: redisClient, cacheTTL: cacheTTL}
}

func (s *Store) Get(ctx context.Context, driverID types.ID) (*DriverSettings, error) {
	if cached, ok := s.cacheGet(ctx, driverID); ok {
		return cached, nil
	}

	row := s.db.QueryRow(ctx, `
		SELECT driver_id, per_pickup, per_drop, per_item, avg_speed,
		       expected_pay, min_hourly_pay, max_orders_per_hour,
		       return_1_drop, return_2_drop, extra_wait_time, updated_at
		FROM driver_settings
		WHERE driver_id = $1`, string(driverID),
	)

	var ds DriverSettings
	err := row.Scan(
		&ds.DriverID,
		&ds.Settings.PerPickup, &ds.Settings.PerDrop, &ds.Settings.PerItem,
		&ds.Settings.AvgSpeed,
		&ds.Settings.ExpectedPay, &ds.Settings.MinHourlyPay, &ds.Settings.MaxOrdersPerHour,
		&ds.Settings.Return1Drop, &ds.Settings.Return2Drop, &ds.Settings.ExtraWaitTime,
		&ds.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, &ds)
	return &ds, nil
}

func (s *Store) Upsert(ctx context.Context, driverID types.ID, cfg evaluator.Settings) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO driver_settings (
			driver_id, per_pickup, per_drop, per_item, avg_speed,
			expected_pay, min_hourly_pay, max_orders_per_hour,
			return_1_drop, return_2_drop, extra_wait_time, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (driver_id) DO UPDATE SET
			per_pickup = EXCLUDED.per_pickup,
			per_drop = EXCLUDED.per_drop,
			per_item = EXCLUDED.per_item,
			avg_speed = EXCLUDED.avg_speed,
			expected_pay = EXCLUDED.expected_pay,
			min_hourly_pay = EXCLUDED.min_hourly_pay,
			max_orders_per_hour = EXCLUDED.max_orders_per_hour,
			return_1_drop = EXCLUDED.return_1_drop,
			return_2_drop = EXCLUDED.return_2_drop,
			extra_wait_time = EXCLUDED.extra_wait_time,
			updated_at = NOW()`,
		string(driverID),
		cfg.PerPickup, cfg.PerDrop, cfg.PerItem, cfg.AvgSpeed,
		cfg.ExpectedPay, cfg.MinHourlyPay, cfg.MaxOrdersPerHour,
		cfg.Return1Drop, cfg.Return2Drop, cfg.ExtraWaitTime,
	)
	if err != nil {
		return err
	}

	s.cacheInvalidate(ctx, driverID)
	return nil
}

// cacheGet returns a cached row. Cache failures count as misses; the database
// stays authoritative.
func (s *Store) cacheGet(ctx context.Context, driverID types.ID) (*DriverSettings, bool) {
	if s.redis == nil {
		return nil, false
	}
	val, err := s.redis.Get(ctx, cacheKey(driverID)).Result()
	if err != nil {
		return nil, false
	}
	var ds DriverSettings
	if err := json.Unmarshal([]byte(val), &ds); err != nil {
		return nil, false
	}
	return &ds, true
}

func (s *Store) cacheSet(ctx context.Context, ds *DriverSettings) {
	if s.redis == nil {
		return
	}
	buf, err := json.Marshal(ds)
	if err != nil {
		return
	}
	_ = s.redis.Set(ctx, cacheKey(ds.DriverID), buf, s.cacheTTL).Err()
}

func (s *Store) cacheInvalidate(ctx context.Context, driverID types.ID) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, cacheKey(driverID)).Err()
}

func cacheKey(driverID types.ID) string {
	return fmt.Sprintf(cacheKeyPrefix, string(driverID))
}
