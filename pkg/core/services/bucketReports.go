package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/pkg/core/buckets"
	"github.com/jdcarver/shift-analytics/pkg/core/economics"
	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// DurationReport groups clean-cohort shifts by exact duration. When filter
// is non-empty, only the named durations are returned (the original reports
// show an all-durations view plus a focused 8/9/12-hour view).
func DurationReport(result *DatasetResult, filter []float64, logger *zap.Logger) []model.DurationStat {
	stats := buckets.ByDuration(result.Cohort)

	if len(filter) > 0 {
		wanted := make(map[float64]bool, len(filter))
		for _, d := range filter {
			wanted[d] = true
		}
		kept := stats[:0]
		for _, s := range stats {
			if wanted[s.DurationHours] {
				kept = append(kept, s)
			}
		}
		stats = kept
	}

	logger.Debug("Duration report", zap.Int("durations", len(stats)))
	return stats
}

// LatencyReportResult pairs the claim-percentage buckets with the
// margin-by-day series so both views of view-to-start latency come from one
// pass over one cohort.
type LatencyReportResult struct {
	Buckets []model.LatencyBucket
	Margins []model.MarginByDay
	Floor   int
}

// LatencyReport buckets clean-cohort shifts by hours between first view and
// shift start. Percentage rows below the significance floor are marked
// insignificant; the margin series keeps every day, zero-filled.
func LatencyReport(result *DatasetResult, cfg buckets.LatencyConfig, logger *zap.Logger) LatencyReportResult {
	report := LatencyReportResult{
		Buckets: buckets.ByViewLatency(result.Cohort, cfg),
		Margins: buckets.MarginByViewLatency(result.Cohort, cfg),
		Floor:   cfg.SignificantTotal,
	}

	significant := 0
	for _, b := range report.Buckets {
		if b.Significant {
			significant++
		}
	}
	logger.Debug("Latency report",
		zap.Int("buckets", len(report.Buckets)),
		zap.Int("significant_buckets", significant))

	return report
}

// TimeOfDayReport maps clean-cohort shift margins onto a fractional
// hour-of-day axis, overnight shifts spanning past 24.
func TimeOfDayReport(result *DatasetResult, logger *zap.Logger) []model.TimeOfDaySpan {
	spans := buckets.ByTimeOfDay(economics.Derive(result.Cohort))
	logger.Debug("Time-of-day report", zap.Int("spans", len(spans)))
	return spans
}

// HolidayReport compares claim behavior and margins for shifts starting on
// configured holiday dates against all other days. Holiday rules are RRULE
// strings supplied by configuration; the rules are expanded over the
// cohort's shift-start range.
func HolidayReport(result *DatasetResult, holidayRules []string, logger *zap.Logger) ([]model.HolidayStat, error) {
	if len(holidayRules) == 0 {
		return nil, fmt.Errorf("no holiday rules configured")
	}

	econ := economics.Derive(result.Cohort)

	var from, to time.Time
	for _, e := range econ {
		if from.IsZero() || e.ShiftStartAt.Before(from) {
			from = e.ShiftStartAt
		}
		if to.IsZero() || e.ShiftStartAt.After(to) {
			to = e.ShiftStartAt
		}
	}

	holidays, err := buckets.HolidayDates(holidayRules, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to expand holiday rules: %w", err)
	}
	logger.Debug("Holiday report",
		zap.Int("holiday_dates", len(holidays)),
		zap.Int("shifts", len(econ)))

	return buckets.ByHoliday(econ, holidays), nil
}
