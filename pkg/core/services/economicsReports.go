package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/pkg/core/economics"
	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// ProfitSummaryResult compares realized profit on claimed shifts with the
// counterfactual best-case profit on unclaimed shifts. The unclaimed figure
// assumes every shift had been claimed at the highest rate ever offered; it
// is an estimate of profit left on the table, never an observed outcome.
type ProfitSummaryResult struct {
	Totals     economics.ProfitTotals
	Hours      economics.HourTotals
	From       time.Time
	To         time.Time
	ShiftCount int
}

// ProfitSummary derives portfolio profit and hour totals over the clean
// cohort, along with the activity date range of the underlying data.
func ProfitSummary(result *DatasetResult, logger *zap.Logger) ProfitSummaryResult {
	econ := economics.Derive(result.Cohort)

	summary := ProfitSummaryResult{
		Totals:     economics.Totals(econ),
		Hours:      economics.Hours(result.Cohort),
		ShiftCount: len(econ),
	}
	summary.From, summary.To = activityRange(result.Cohort.Table)

	logger.Debug("Profit summary",
		zap.Float64("claimed_profit", summary.Totals.ClaimedProfit),
		zap.Float64("unclaimed_profit_counterfactual", summary.Totals.UnclaimedProfit),
		zap.Float64("claimed_hours", summary.Hours.ClaimedHours),
		zap.Float64("unclaimed_hours", summary.Hours.UnclaimedHours))

	return summary
}

// HoursSummary computes filled vs unfilled shift hour totals over the clean
// cohort. Claimed hours count every claim row; unclaimed hours count each
// unclaimed shift once.
func HoursSummary(result *DatasetResult, logger *zap.Logger) economics.HourTotals {
	hours := economics.Hours(result.Cohort)

	logger.Debug("Hours summary",
		zap.Float64("claimed_hours", hours.ClaimedHours),
		zap.Float64("unclaimed_hours", hours.UnclaimedHours))

	return hours
}

// ChargeRateSummary computes the charge-rate distribution across unique
// workplaces in the clean cohort.
func ChargeRateSummary(result *DatasetResult, logger *zap.Logger) (economics.ChargeRateQuartiles, error) {
	q, ok := economics.ChargeRates(result.Cohort.Table)
	if !ok {
		return economics.ChargeRateQuartiles{}, fmt.Errorf("no workplace has a parseable charge rate")
	}

	logger.Debug("Charge rate summary",
		zap.Int("workplaces", q.Workplaces),
		zap.Float64("median", q.Median))

	return q, nil
}

// RateSplitSummary classifies clean-cohort shifts by whether their governing
// pay rate sits below or at/above the charge rate.
func RateSplitSummary(result *DatasetResult, logger *zap.Logger) economics.RateSplit {
	split := economics.SplitByRate(economics.Derive(result.Cohort))

	logger.Debug("Rate split summary",
		zap.Int("claimed_below", split.ClaimedBelow),
		zap.Int("claimed_at_above", split.ClaimedAtAbove),
		zap.Int("unclaimed_below", split.UnclaimedBelow),
		zap.Int("unclaimed_at_above", split.UnclaimedAtAbove))

	return split
}

// activityRange finds the earliest offer view and the latest view or claim
// across the table, for report subtitles.
func activityRange(table *model.EventTable) (time.Time, time.Time) {
	var from, to time.Time
	observe := func(t *time.Time) {
		if t == nil {
			return
		}
		if from.IsZero() || t.Before(from) {
			from = *t
		}
		if to.IsZero() || t.After(to) {
			to = *t
		}
	}
	for i := range table.Events {
		observe(table.Events[i].OfferViewedAt)
		observe(table.Events[i].ClaimedAt)
	}
	return from, to
}
