// README: DB-backed settings store tests (round trip, defaults, cache invalidation).
package settings

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"offerwise/internal/modules/evaluator"
	"offerwise/internal/types"
)

func TestSettingsRoundTrip(t *testing.T) {
	svc := NewService(setupTestStore(t))
	ctx := context.Background()
	driverID := testDriverID()

	// Unknown driver gets the shipped defaults.
	got, err := svc.Get(ctx, driverID)
	if err != nil {
		t.Fatalf("get defaults: %v", err)
	}
	if got != evaluator.DefaultSettings {
		t.Fatalf("expected defaults for unknown driver, got %+v", got)
	}

	cfg := evaluator.DefaultSettings
	cfg.ExpectedPay = 28
	cfg.MinHourlyPay = 18
	if err := svc.Save(ctx, driverID, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = svc.Get(ctx, driverID)
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, cfg)
	}
}

func TestSettingsUpdateInvalidatesCache(t *testing.T) {
	svc := NewService(setupTestStore(t))
	ctx := context.Background()
	driverID := testDriverID()

	first := evaluator.DefaultSettings
	first.ExpectedPay = 24
	if err := svc.Save(ctx, driverID, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Get(ctx, driverID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	second := first
	second.ExpectedPay = 30
	if err := svc.Save(ctx, driverID, second); err != nil {
		t.Fatalf("save update: %v", err)
	}

	got, err := svc.Get(ctx, driverID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.ExpectedPay != 30 {
		t.Fatalf("stale settings after update: expected_pay = %v, want 30", got.ExpectedPay)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	// Validation runs before the store is touched.
	svc := NewService(nil)
	cfg := evaluator.DefaultSettings
	cfg.AvgSpeed = 0
	if err := svc.Save(context.Background(), "d1", cfg); err != ErrInvalidSettings {
		t.Fatalf("save invalid: error = %v, want ErrInvalidSettings", err)
	}
	if err := svc.Save(context.Background(), "", evaluator.DefaultSettings); err != ErrBadRequest {
		t.Fatalf("save empty driver: error = %v, want ErrBadRequest", err)
	}
}

func testDriverID() types.ID {
	return types.ID(fmt.Sprintf("d_test_%d", time.Now().UnixNano()))
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("OFFERWISE_TEST_DSN")
	if dsn == "" {
		t.Skip("OFFERWISE_TEST_DSN not set; skipping DB-backed settings tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS driver_settings (
			driver_id TEXT PRIMARY KEY,
			per_pickup DOUBLE PRECISION NOT NULL,
			per_drop DOUBLE PRECISION NOT NULL,
			per_item DOUBLE PRECISION NOT NULL,
			avg_speed DOUBLE PRECISION NOT NULL,
			expected_pay DOUBLE PRECISION NOT NULL,
			min_hourly_pay DOUBLE PRECISION NOT NULL,
			max_orders_per_hour DOUBLE PRECISION NOT NULL,
			return_1_drop DOUBLE PRECISION NOT NULL,
			return_2_drop DOUBLE PRECISION NOT NULL,
			extra_wait_time DOUBLE PRECISION NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		t.Fatalf("ensure driver_settings table: %v", err)
	}

	var redisClient *redis.Client
	if addr := os.Getenv("OFFERWISE_TEST_REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
		t.Cleanup(func() { _ = redisClient.Close() })
	}

	return NewStore(db, redisClient, time.Minute)
}
