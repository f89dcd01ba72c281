// README: Settings validation tests.
package settings

import (
	"math"
	"testing"

	"offerwise/internal/modules/evaluator"
)

func TestValidate(t *testing.T) {
	base := evaluator.DefaultSettings

	tests := []struct {
		name    string
		mutate  func(*evaluator.Settings)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*evaluator.Settings) {}},
		{name: "zero avg speed", mutate: func(s *evaluator.Settings) { s.AvgSpeed = 0 }, wantErr: true},
		{name: "negative avg speed", mutate: func(s *evaluator.Settings) { s.AvgSpeed = -10 }, wantErr: true},
		{name: "zero orders cap", mutate: func(s *evaluator.Settings) { s.MaxOrdersPerHour = 0 }, wantErr: true},
		{name: "negative per item", mutate: func(s *evaluator.Settings) { s.PerItem = -1 }, wantErr: true},
		{name: "negative return percent", mutate: func(s *evaluator.Settings) { s.Return2Drop = -5 }, wantErr: true},
		{name: "NaN expected pay", mutate: func(s *evaluator.Settings) { s.ExpectedPay = math.NaN() }, wantErr: true},
		{name: "infinite speed", mutate: func(s *evaluator.Settings) { s.AvgSpeed = math.Inf(1) }, wantErr: true},
		{name: "zero hourly floor disables it", mutate: func(s *evaluator.Settings) { s.MinHourlyPay = 0 }},
		{name: "zero expected pay allowed", mutate: func(s *evaluator.Settings) { s.ExpectedPay = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr && err != ErrInvalidSettings {
				t.Errorf("Validate() = %v, want ErrInvalidSettings", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
