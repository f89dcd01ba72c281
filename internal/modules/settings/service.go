// README: Settings service: validation plus defaults fallback over the store.
package settings

import (
	"context"
	"errors"
	"math"

	"offerwise/internal/modules/evaluator"
	"offerwise/internal/types"
)

var (
	ErrNotFound        = errors.New("settings not found")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrBadRequest      = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Get returns the driver's stored settings, or the shipped defaults when the
// driver has never saved any.
func (s *Service) Get(ctx context.Context, driverID types.ID) (evaluator.Settings, error) {
	if driverID == "" {
		return evaluator.Settings{}, ErrBadRequest
	}
	ds, err := s.store.Get(ctx, driverID)
	if errors.Is(err, ErrNotFound) {
		return evaluator.DefaultSettings, nil
	}
	if err != nil {
		return evaluator.Settings{}, err
	}
	return ds.Settings, nil
}

// Save validates and persists the full settings record for a driver.
func (s *Service) Save(ctx context.Context, driverID types.ID, cfg evaluator.Settings) error {
	if driverID == "" {
		return ErrBadRequest
	}
	if err := Validate(cfg); err != nil {
		return err
	}
	return s.store.Upsert(ctx, driverID, cfg)
}

// Validate enforces the settings invariants: every value finite and
// non-negative, with AvgSpeed and MaxOrdersPerHour strictly positive.
func Validate(cfg evaluator.Settings) error {
	positive := map[string]float64{
		"avg_speed":           cfg.AvgSpeed,
		"max_orders_per_hour": cfg.MaxOrdersPerHour,
	}
	nonNegative := map[string]float64{
		"per_pickup":      cfg.PerPickup,
		"per_drop":        cfg.PerDrop,
		"per_item":        cfg.PerItem,
		"expected_pay":    cfg.ExpectedPay,
		"min_hourly_pay":  cfg.MinHourlyPay,
		"return_1_drop":   cfg.Return1Drop,
		"return_2_drop":   cfg.Return2Drop,
		"extra_wait_time": cfg.ExtraWaitTime,
	}

	for _, v := range positive {
		if !isFinite(v) || v <= 0 {
			return ErrInvalidSettings
		}
	}
	for _, v := range nonNegative {
		if !isFinite(v) || v < 0 {
			return ErrInvalidSettings
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
