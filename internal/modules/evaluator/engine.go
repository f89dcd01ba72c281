// README: Offer evaluation engine: time/pay model, verdict, threshold table.
package evaluator

import "math"

// ComputePayRequirement converts an offer into elapsed minutes and the pay
// that would hit the target rate. Fields are rounded to 2 decimals for
// display; EvaluateOffer works on the unrounded internals.
func ComputePayRequirement(o Offer, s Settings) PayRequirement {
	req := payRequirement(o.withDefaults(), s, 0)
	return PayRequirement{
		PickupTime:   round2(req.PickupTime),
		TravelTime:   round2(req.TravelTime),
		DropTime:     round2(req.DropTime),
		ShoppingTime: round2(req.ShoppingTime),
		ReturnDelta:  round2(req.ReturnDelta),
		TotalMinutes: round2(req.TotalMinutes),
		RequiredPay:  round2(req.RequiredPay),
	}
}

// ComputeMaxima answers "how far could I theoretically go for this pay" using
// only pay and stop counts. MaxMiles and MaxItems are mutually exclusive
// single-dimension ceilings, not a joint optimum.
func ComputeMaxima(o Offer, s Settings) Maxima {
	m := maxima(o.withDefaults(), s)
	m.MaxMinutes = round2(m.MaxMinutes)
	m.FixedTime = round2(m.FixedTime)
	m.MaxMiles = round2(m.MaxMiles)
	return m
}

// EvaluateOffer classifies an offer against the driver's settings and
// computes the full threshold table. Pickups and drops default to 1 when
// unset. It returns ErrInvalidOffer when pay <= 0 or drops <= 0; every other
// combination of non-negative numeric input yields a result.
func EvaluateOffer(o Offer, s Settings) (Evaluation, error) {
	return evaluate(o, s, 0)
}

// WhatIfWait re-evaluates the offer with the settings' assumed pickup wait
// folded into the time model. The verdict math proper never includes it.
func WhatIfWait(o Offer, s Settings) (Evaluation, error) {
	return evaluate(o, s, s.ExtraWaitTime)
}

func evaluate(o Offer, s Settings, extraWait float64) (Evaluation, error) {
	o = o.withDefaults()
	if o.Pay <= 0 || o.Drops <= 0 {
		return Evaluation{}, ErrInvalidOffer
	}

	max := maxima(o, s)
	ev := Evaluation{
		Pay:    o.Pay,
		Maxima: max,
	}

	// No route and nothing to shop: report the theoretical ceilings instead
	// of a time breakdown.
	if o.Miles <= 0 && o.Items <= 0 {
		ev.HasRoute = false
		ev.Summary = maximaSummary(o.Pay, max)
		roundEvaluation(&ev)
		return ev, nil
	}

	req := payRequirement(o, s, extraWait)

	ordersPerHour := 0.0
	if req.TotalMinutes > 0 {
		ordersPerHour = math.Min(s.MaxOrdersPerHour, 60/req.TotalMinutes)
	}
	effectiveHourly := o.Pay * ordersPerHour

	meetsFloor := o.Pay >= req.RequiredPay
	if s.MinHourlyPay > 0 {
		meetsFloor = effectiveHourly >= s.MinHourlyPay
	}

	verdict := VerdictDecent
	switch {
	case !meetsFloor:
		verdict = VerdictBad
	case effectiveHourly >= s.ExpectedPay:
		verdict = VerdictGood
	}

	ev.HasRoute = true
	ev.Verdict = verdict
	ev.EffectiveHourly = effectiveHourly
	ev.OrdersPerHour = ordersPerHour
	ev.RequiredPay = req.RequiredPay
	ev.PayDiff = o.Pay - req.RequiredPay
	ev.Breakdown = req
	ev.Thresholds = thresholds(o, s, req, ordersPerHour)
	ev.Summary = verdictSummary(verdict, o.Pay, effectiveHourly, s.ExpectedPay, req.TotalMinutes)
	roundEvaluation(&ev)
	return ev, nil
}

// payRequirement is the unrounded §time/pay model. extraWait is folded into
// the pickup component so downstream fixed-time subtractions stay consistent.
func payRequirement(o Offer, s Settings, extraWait float64) PayRequirement {
	travel := 0.0
	if s.AvgSpeed > 0 {
		travel = o.Miles / s.AvgSpeed * 60
	}
	pickup := float64(o.Pickups)*s.PerPickup + extraWait
	drop := float64(o.Drops) * s.PerDrop
	shopping := float64(o.Items) * s.PerItem
	returnDelta := travel * returnPercent(o.Drops, s) / 100
	total := pickup + travel + drop + shopping + returnDelta

	return PayRequirement{
		PickupTime:   pickup,
		TravelTime:   travel,
		DropTime:     drop,
		ShoppingTime: shopping,
		ReturnDelta:  returnDelta,
		TotalMinutes: total,
		RequiredPay:  total * s.ExpectedPay / 60,
	}
}

func maxima(o Offer, s Settings) Maxima {
	maxMinutes := 0.0
	if s.ExpectedPay > 0 {
		maxMinutes = o.Pay / s.ExpectedPay * 60
	}
	fixed := float64(o.Pickups)*s.PerPickup + float64(o.Drops)*s.PerDrop
	remaining := maxMinutes - fixed
	if remaining < 0 {
		remaining = 0
	}

	maxMiles := 0.0
	if mult := 1 + returnPercent(o.Drops, s)/100; mult > 0 {
		maxMiles = remaining / mult * s.AvgSpeed / 60
	}
	maxItems := 0
	if s.PerItem > 0 {
		maxItems = int(math.Floor(remaining / s.PerItem))
	}

	return Maxima{
		MaxMinutes: maxMinutes,
		FixedTime:  fixed,
		MaxMiles:   maxMiles,
		MaxItems:   maxItems,
	}
}

// thresholds derives the per-dimension boundary values. Each answers a strict
// ceteris-paribus question; no threshold feeds into another.
func thresholds(o Offer, s Settings, req PayRequirement, ordersPerHour float64) Thresholds {
	canBeGood := o.Pay*s.MaxOrdersPerHour >= s.ExpectedPay

	maxMinutes := 0.0
	if s.ExpectedPay > 0 {
		maxMinutes = o.Pay / s.ExpectedPay * 60
	}

	mult := 1 + returnPercent(o.Drops, s)/100
	milesFor := func(budget float64) float64 {
		remaining := budget - (req.PickupTime + req.DropTime + req.ShoppingTime)
		if remaining < 0 || mult <= 0 {
			return 0
		}
		return remaining / mult * s.AvgSpeed / 60
	}
	itemsFor := func(budget float64) int {
		remaining := budget - (req.PickupTime + req.DropTime + req.TravelTime + req.ReturnDelta)
		if remaining < 0 || s.PerItem <= 0 {
			return 0
		}
		return int(math.Floor(remaining / s.PerItem))
	}

	t := Thresholds{
		CanBeGood:         canBeGood,
		MaxTimeForDecent:  maxMinutes,
		MaxMilesForDecent: milesFor(maxMinutes),
		MaxItemsForDecent: itemsFor(maxMinutes),
	}
	if canBeGood {
		goodTime := t.MaxTimeForDecent
		goodMiles := t.MaxMilesForDecent
		goodItems := t.MaxItemsForDecent
		t.MaxTimeForGood = &goodTime
		t.MaxMilesForGood = &goodMiles
		t.MaxItemsForGood = &goodItems
	}

	if ordersPerHour > 0 {
		t.MinPayForGood = s.ExpectedPay / ordersPerHour
	}

	if s.MinHourlyPay > 0 {
		// Solve pay*60/total = minHourlyPay for total. While the order is
		// throughput-capped the effective hourly stays flat, so the time
		// threshold cannot fall inside the capped region.
		badTime := o.Pay * 60 / s.MinHourlyPay
		if s.MaxOrdersPerHour > 0 {
			capBoundary := 60 / s.MaxOrdersPerHour
			if req.TotalMinutes <= capBoundary && badTime < capBoundary {
				badTime = capBoundary
			}
		}
		t.TimeBeforeBad = badTime
		t.MilesBeforeBad = milesFor(badTime)
		t.ItemsBeforeBad = itemsFor(badTime)
		if ordersPerHour > 0 {
			t.MinPayForDecent = s.MinHourlyPay / ordersPerHour
		}
	} else {
		// With no hourly floor, BAD and not-DECENT share one boundary.
		t.TimeBeforeBad = t.MaxTimeForDecent
		t.MilesBeforeBad = t.MaxMilesForDecent
		t.ItemsBeforeBad = t.MaxItemsForDecent
		t.MinPayForDecent = req.RequiredPay
	}

	return t
}

func returnPercent(drops int, s Settings) float64 {
	if drops >= 2 {
		return s.Return2Drop
	}
	return s.Return1Drop
}

// roundEvaluation applies display rounding once, at the result boundary.
func roundEvaluation(ev *Evaluation) {
	ev.EffectiveHourly = round2(ev.EffectiveHourly)
	ev.OrdersPerHour = round2(ev.OrdersPerHour)
	ev.RequiredPay = round2(ev.RequiredPay)
	ev.PayDiff = round2(ev.PayDiff)

	ev.Breakdown.PickupTime = round2(ev.Breakdown.PickupTime)
	ev.Breakdown.TravelTime = round2(ev.Breakdown.TravelTime)
	ev.Breakdown.DropTime = round2(ev.Breakdown.DropTime)
	ev.Breakdown.ShoppingTime = round2(ev.Breakdown.ShoppingTime)
	ev.Breakdown.ReturnDelta = round2(ev.Breakdown.ReturnDelta)
	ev.Breakdown.TotalMinutes = round2(ev.Breakdown.TotalMinutes)
	ev.Breakdown.RequiredPay = round2(ev.Breakdown.RequiredPay)

	ev.Maxima.MaxMinutes = round2(ev.Maxima.MaxMinutes)
	ev.Maxima.FixedTime = round2(ev.Maxima.FixedTime)
	ev.Maxima.MaxMiles = round2(ev.Maxima.MaxMiles)

	ev.Thresholds.MaxTimeForDecent = round2(ev.Thresholds.MaxTimeForDecent)
	ev.Thresholds.MaxMilesForDecent = round2(ev.Thresholds.MaxMilesForDecent)
	roundPtr(ev.Thresholds.MaxTimeForGood)
	roundPtr(ev.Thresholds.MaxMilesForGood)
	ev.Thresholds.MinPayForGood = round2(ev.Thresholds.MinPayForGood)
	ev.Thresholds.MinPayForDecent = round2(ev.Thresholds.MinPayForDecent)
	ev.Thresholds.TimeBeforeBad = round2(ev.Thresholds.TimeBeforeBad)
	ev.Thresholds.MilesBeforeBad = round2(ev.Thresholds.MilesBeforeBad)
}

func roundPtr(v *float64) {
	if v != nil {
		*v = round2(*v)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
