// README: Driver settings row model.
package settings

import (
	"time"

	"offerwise/internal/modules/evaluator"
	"offerwise/internal/types"
)

// DriverSettings is one driver's stored evaluation settings.
type DriverSettings struct {
	DriverID  types.ID           `json:"driver_id"`
	Settings  evaluator.Settings `json:"settings"`
	UpdatedAt time.Time          `json:"updated_at"`
}
