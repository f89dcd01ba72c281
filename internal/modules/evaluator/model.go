// README: Offer evaluation domain model: settings, offer, verdict, result types.
package evaluator

import "errors"

// Verdict classifies an offer against the driver's targets.
type Verdict string

const (
	VerdictGood   Verdict = "good"
	VerdictDecent Verdict = "decent"
	VerdictBad    Verdict = "bad"
)

// ErrInvalidOffer is returned by EvaluateOffer when pay <= 0 or drops <= 0.
// Callers that pre-validate input never see it.
var ErrInvalidOffer = errors.New("invalid offer")

// Settings holds the driver-tunable evaluation parameters. All values are
// plain numbers; persistence and validation belong to the settings module.
type Settings struct {
	// Minutes consumed per pickup stop, drop stop, and shopping item.
	PerPickup float64 `json:"per_pickup"`
	PerDrop   float64 `json:"per_drop"`
	PerItem   float64 `json:"per_item"`

	// AvgSpeed converts miles to travel minutes (miles per hour).
	AvgSpeed float64 `json:"avg_speed"`

	// ExpectedPay is the target $/hour defining the GOOD threshold.
	ExpectedPay float64 `json:"expected_pay"`

	// MinHourlyPay is an optional $/hour floor. 0 disables it; when > 0 the
	// BAD test switches from pay-vs-required-pay to effective-hourly-vs-floor.
	MinHourlyPay float64 `json:"min_hourly_pay"`

	// MaxOrdersPerHour caps how many orders per hour the effective hourly
	// rate may assume, so very short orders don't report absurd rates.
	MaxOrdersPerHour float64 `json:"max_orders_per_hour"`

	// Return1Drop / Return2Drop are the percentages of one-way travel time
	// added back for the empty return leg, selected by drop count.
	Return1Drop float64 `json:"return_1_drop"`
	Return2Drop float64 `json:"return_2_drop"`

	// ExtraWaitTime is the assumed pickup wait in minutes, used only by the
	// what-if exploration, never by the verdict math.
	ExtraWaitTime float64 `json:"extra_wait_time"`
}

// DefaultSettings are the shipped defaults a driver starts from.
var DefaultSettings = Settings{
	PerPickup:        5,
	PerDrop:          2,
	PerItem:          1.5,
	AvgSpeed:         35,
	ExpectedPay:      21,
	MinHourlyPay:     0,
	MaxOrdersPerHour: 3,
	Return1Drop:      100,
	Return2Drop:      75,
	ExtraWaitTime:    5,
}

// Offer is a single candidate delivery job. It has no identity or lifecycle;
// callers construct one per evaluation and discard it.
type Offer struct {
	Pay     float64 `json:"pay"`
	Pickups int     `json:"pickups"`
	Drops   int     `json:"drops"`
	Miles   float64 `json:"miles"`
	Items   int     `json:"items"`
}

// withDefaults fills unset stop counts (pickups=1, drops=1). Miles and items
// default to their zero values. Negative counts are left for validation.
func (o Offer) withDefaults() Offer {
	if o.Pickups == 0 {
		o.Pickups = 1
	}
	if o.Drops == 0 {
		o.Drops = 1
	}
	return o
}

// PayRequirement breaks an offer down into elapsed minutes and the pay that
// would hit the target rate. All fields are minutes except RequiredPay.
type PayRequirement struct {
	PickupTime   float64 `json:"pickup_time"`
	TravelTime   float64 `json:"travel_time"`
	DropTime     float64 `json:"drop_time"`
	ShoppingTime float64 `json:"shopping_time"`
	ReturnDelta  float64 `json:"return_delta"`
	TotalMinutes float64 `json:"total_minutes"`
	RequiredPay  float64 `json:"required_pay"`
}

// Maxima answers "how far could this pay theoretically go": ceilings for a
// single dimension at a time, never a joint optimum.
type Maxima struct {
	MaxMinutes float64 `json:"max_minutes"`
	FixedTime  float64 `json:"fixed_time"`
	MaxMiles   float64 `json:"max_miles"`
	MaxItems   int     `json:"max_items"`
}

// Thresholds is the sensitivity table: for each dimension, the boundary value
// at which the verdict would change with the other dimensions held fixed.
// GOOD-side values are nil when the pay can never reach GOOD even at the
// throughput cap (unreachable, not zero).
type Thresholds struct {
	CanBeGood bool `json:"can_be_good"`

	MaxTimeForDecent  float64 `json:"max_time_for_decent"`
	MaxMilesForDecent float64 `json:"max_miles_for_decent"`
	MaxItemsForDecent int     `json:"max_items_for_decent"`

	MaxTimeForGood  *float64 `json:"max_time_for_good,omitempty"`
	MaxMilesForGood *float64 `json:"max_miles_for_good,omitempty"`
	MaxItemsForGood *int     `json:"max_items_for_good,omitempty"`

	MinPayForGood   float64 `json:"min_pay_for_good"`
	MinPayForDecent float64 `json:"min_pay_for_decent"`

	TimeBeforeBad  float64 `json:"time_before_bad"`
	MilesBeforeBad float64 `json:"miles_before_bad"`
	ItemsBeforeBad int     `json:"items_before_bad"`
}

// Evaluation is the immutable result of one EvaluateOffer call.
type Evaluation struct {
	// HasRoute is false for offers with no miles and no items; those report
	// only the maxima branch ("how far could this pay go").
	HasRoute bool `json:"has_route"`

	Pay     float64 `json:"pay"`
	Verdict Verdict `json:"verdict,omitempty"`

	EffectiveHourly float64 `json:"effective_hourly"`
	OrdersPerHour   float64 `json:"orders_per_hour"`
	RequiredPay     float64 `json:"required_pay"`
	PayDiff         float64 `json:"pay_diff"`

	Breakdown  PayRequirement `json:"breakdown"`
	Maxima     Maxima         `json:"maxima"`
	Thresholds Thresholds     `json:"thresholds"`

	Summary string `json:"summary"`
}
