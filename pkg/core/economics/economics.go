package economics

import (
	"sort"
	"time"

	"github.com/jdcarver/shift-analytics/pkg/core/claims"
	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// ShiftEnd computes the end of a shift from its start and duration. Duration
// is in hours, the pipeline's canonical unit.
func ShiftEnd(start time.Time, durationHours float64) time.Time {
	return start.Add(time.Duration(durationHours * float64(time.Hour)))
}

// ProfitMarginPct computes (charge - pay) / charge * 100. The caller must
// have already guarded charge > 0.
func ProfitMarginPct(chargeRate, payRate float64) float64 {
	return (chargeRate - payRate) / chargeRate * 100
}

// Derive computes per-shift economics over a clean cohort.
//
// Claimed shifts use the realized claim's pay rate: the actual outcome. An
// unclaimed shift uses the highest rate ever offered for it, with charge
// rate and duration taken from its first event (both are invariant per
// shift). Those figures are an explicit counterfactual best case, flagged as
// such on the record.
//
// Shifts with a non-positive charge rate are excluded here, at the metric
// boundary: they stay in raw claim counts but cannot appear in any margin
// figure. Shifts missing the rate, duration or start fields needed for the
// computation are likewise skipped.
func Derive(c *model.Cohort) []model.ShiftEconomics {
	out := make([]model.ShiftEconomics, 0, c.Resolution.TotalShifts())

	for _, shiftID := range c.Resolution.ShiftIDs {
		outcome := c.Resolution.Outcomes[shiftID]
		if outcome.Claimed {
			if econ, ok := deriveClaimed(c.Table, shiftID); ok {
				out = append(out, econ)
			}
			continue
		}
		if econ, ok := deriveUnclaimed(c.Table, shiftID); ok {
			out = append(out, econ)
		}
	}

	return out
}

func deriveClaimed(table *model.EventTable, shiftID string) (model.ShiftEconomics, bool) {
	realized := claims.RealizedClaim(table, shiftID)
	if realized == nil {
		return model.ShiftEconomics{}, false
	}
	if realized.PayRate == nil || realized.ChargeRate == nil || *realized.ChargeRate <= 0 {
		return model.ShiftEconomics{}, false
	}
	if realized.DurationHours == nil || realized.ShiftStartAt == nil {
		return model.ShiftEconomics{}, false
	}

	pay, charge, duration := *realized.PayRate, *realized.ChargeRate, *realized.DurationHours
	start := *realized.ShiftStartAt

	return model.ShiftEconomics{
		ShiftID:         shiftID,
		WorkplaceID:     realized.WorkplaceID,
		Claimed:         true,
		PayRate:         pay,
		ChargeRate:      charge,
		DurationHours:   duration,
		ShiftStartAt:    start,
		ShiftEndAt:      ShiftEnd(start, duration),
		ProfitAbs:       (charge - pay) * duration,
		ProfitMarginPct: ProfitMarginPct(charge, pay),
	}, true
}

func deriveUnclaimed(table *model.EventTable, shiftID string) (model.ShiftEconomics, bool) {
	var representative *model.OfferEvent
	var maxPay *float64
	for i := range table.Events {
		ev := &table.Events[i]
		if ev.ShiftID != shiftID {
			continue
		}
		if representative == nil {
			representative = ev
		}
		if ev.PayRate != nil && (maxPay == nil || *ev.PayRate > *maxPay) {
			maxPay = ev.PayRate
		}
	}
	if representative == nil || maxPay == nil {
		return model.ShiftEconomics{}, false
	}
	if representative.ChargeRate == nil || *representative.ChargeRate <= 0 {
		return model.ShiftEconomics{}, false
	}
	if representative.DurationHours == nil || representative.ShiftStartAt == nil {
		return model.ShiftEconomics{}, false
	}

	charge, duration := *representative.ChargeRate, *representative.DurationHours
	start := *representative.ShiftStartAt

	return model.ShiftEconomics{
		ShiftID:         shiftID,
		WorkplaceID:     representative.WorkplaceID,
		Claimed:         false,
		Counterfactual:  true,
		PayRate:         *maxPay,
		ChargeRate:      charge,
		DurationHours:   duration,
		ShiftStartAt:    start,
		ShiftEndAt:      ShiftEnd(start, duration),
		ProfitAbs:       (charge - *maxPay) * duration,
		ProfitMarginPct: ProfitMarginPct(charge, *maxPay),
	}, true
}

// MaxOfferedPayRate returns the highest pay rate recorded across all events
// of a shift, or false when no event carries a rate.
func MaxOfferedPayRate(table *model.EventTable, shiftID string) (float64, bool) {
	var maxPay *float64
	for i := range table.Events {
		ev := &table.Events[i]
		if ev.ShiftID != shiftID || ev.PayRate == nil {
			continue
		}
		if maxPay == nil || *ev.PayRate > *maxPay {
			maxPay = ev.PayRate
		}
	}
	if maxPay == nil {
		return 0, false
	}
	return *maxPay, true
}

// ProfitTotals sums realized claimed profit against the counterfactual
// profit left on the table by unclaimed shifts.
type ProfitTotals struct {
	ClaimedProfit   float64
	UnclaimedProfit float64 // counterfactual: best case at the max offer
}

// Totals aggregates per-shift economics into portfolio totals.
func Totals(econ []model.ShiftEconomics) ProfitTotals {
	var t ProfitTotals
	for _, e := range econ {
		if e.Claimed {
			t.ClaimedProfit += e.ProfitAbs
		} else {
			t.UnclaimedProfit += e.ProfitAbs
		}
	}
	return t
}

// HourTotals sums shift hours filled against hours left unfilled. Claimed
// hours count every claim event's duration; unclaimed hours count each
// unclaimed shift once.
type HourTotals struct {
	ClaimedHours   float64
	UnclaimedHours float64
}

// Hours computes filled vs unfilled hour totals over a clean cohort.
func Hours(c *model.Cohort) HourTotals {
	var t HourTotals
	counted := make(map[string]bool)
	for i := range c.Table.Events {
		ev := &c.Table.Events[i]
		if ev.DurationHours == nil {
			continue
		}
		if ev.IsClaim() {
			t.ClaimedHours += *ev.DurationHours
			continue
		}
		outcome := c.Resolution.Outcomes[ev.ShiftID]
		if outcome != nil && !outcome.Claimed && !counted[ev.ShiftID] {
			t.UnclaimedHours += *ev.DurationHours
			counted[ev.ShiftID] = true
		}
	}
	return t
}

// ChargeRateQuartiles summarizes the charge-rate distribution across unique
// workplaces.
type ChargeRateQuartiles struct {
	Workplaces int
	Min        float64
	Q1         float64
	Median     float64
	Q3         float64
	Max        float64
}

// ChargeRates computes the five-number summary of charge rates, one rate per
// workplace (the first non-null rate seen for it).
func ChargeRates(table *model.EventTable) (ChargeRateQuartiles, bool) {
	seen := make(map[string]bool)
	var rates []float64
	for i := range table.Events {
		ev := &table.Events[i]
		if ev.WorkplaceID == "" || ev.ChargeRate == nil || seen[ev.WorkplaceID] {
			continue
		}
		seen[ev.WorkplaceID] = true
		rates = append(rates, *ev.ChargeRate)
	}
	if len(rates) == 0 {
		return ChargeRateQuartiles{}, false
	}

	sort.Float64s(rates)
	return ChargeRateQuartiles{
		Workplaces: len(rates),
		Min:        rates[0],
		Q1:         quantile(rates, 0.25),
		Median:     quantile(rates, 0.50),
		Q3:         quantile(rates, 0.75),
		Max:        rates[len(rates)-1],
	}, true
}

// quantile linearly interpolates the q-th quantile of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// RateSplit counts shifts whose governing pay rate sits below versus at or
// above the charge rate. Claimed shifts compare the realized claim rate;
// unclaimed shifts compare the highest rate ever offered.
type RateSplit struct {
	ClaimedBelow     int
	ClaimedAtAbove   int
	UnclaimedBelow   int
	UnclaimedAtAbove int
}

// SplitByRate classifies clean-cohort shifts by pay rate vs charge rate.
func SplitByRate(econ []model.ShiftEconomics) RateSplit {
	var s RateSplit
	for _, e := range econ {
		below := e.PayRate < e.ChargeRate
		switch {
		case e.Claimed && below:
			s.ClaimedBelow++
		case e.Claimed:
			s.ClaimedAtAbove++
		case below:
			s.UnclaimedBelow++
		default:
			s.UnclaimedAtAbove++
		}
	}
	return s
}
