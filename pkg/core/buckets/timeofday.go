package buckets

import (
	"time"

	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// FractionalHour converts a timestamp's time of day into fractional hours,
// e.g. 13:30:00 becomes 13.5.
func FractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// ByTimeOfDay positions each clean-cohort shift's profit margin on a
// fractional hour-of-day axis from its start to its end. When the computed
// end hour is at or before the start hour the shift runs overnight, and the
// end hour gets 24 added so the span displays as a continuation past
// midnight. Margin semantics follow the per-shift economics: realized rate
// for claimed shifts, counterfactual max offer for unclaimed ones, with the
// non-positive charge rate guard already applied upstream.
func ByTimeOfDay(econ []model.ShiftEconomics) []model.TimeOfDaySpan {
	spans := make([]model.TimeOfDaySpan, 0, len(econ))
	for _, e := range econ {
		start := FractionalHour(e.ShiftStartAt)
		end := FractionalHour(e.ShiftEndAt)
		if end <= start {
			end += 24
		}
		spans = append(spans, model.TimeOfDaySpan{
			ShiftID:         e.ShiftID,
			WorkplaceID:     e.WorkplaceID,
			Claimed:         e.Claimed,
			StartHour:       start,
			EndHour:         end,
			ProfitMarginPct: e.ProfitMarginPct,
		})
	}
	return spans
}
