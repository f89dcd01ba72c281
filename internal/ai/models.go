package ai

import "offerwise/internal/modules/evaluator"

// OfferExtract captures the structured output from the AI model. Pointer
// fields are nil when the capture did not mention that dimension.
type OfferExtract struct {
	// Pay is the offered amount in dollars, including any visible tip.
	Pay *float64 `json:"pay,omitempty"`

	// Pickups and Drops are stop counts. Most captures show a single pickup
	// and a single drop, so both default to 1 downstream when absent.
	Pickups *int `json:"pickups,omitempty"`
	Drops   *int `json:"drops,omitempty"`

	// Miles is the advertised one-way distance.
	Miles *float64 `json:"miles,omitempty"`

	// Items is the shopping item count, 0 for pure delivery offers.
	Items *int `json:"items,omitempty"`

	// Note is a short remark about anything ambiguous in the capture.
	Note string `json:"note,omitempty"`
}

// ToOffer converts the extract into the evaluator's plain offer record,
// leaving absent fields at their zero values for the engine's defaulting.
func (e *OfferExtract) ToOffer() evaluator.Offer {
	var o evaluator.Offer
	if e.Pay != nil {
		o.Pay = *e.Pay
	}
	if e.Pickups != nil {
		o.Pickups = *e.Pickups
	}
	if e.Drops != nil {
		o.Drops = *e.Drops
	}
	if e.Miles != nil {
		o.Miles = *e.Miles
	}
	if e.Items != nil {
		o.Items = *e.Items
	}
	return o
}
