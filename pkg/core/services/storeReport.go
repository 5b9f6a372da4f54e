package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/pkg/core/buckets"
	"github.com/jdcarver/shift-analytics/pkg/db"
)

// StoreReport persists one analysis run: the headline counts, the exclusion
// audit, the profit/hour totals, and the duration and latency bucket tables.
// Returns the generated run ID.
func StoreReport(
	ctx context.Context,
	store db.ReportStore,
	result *DatasetResult,
	source string,
	logger *zap.Logger,
) (string, error) {
	runID := uuid.New().String()

	summary := ClaimSummary(result, logger)
	profit := ProfitSummary(result, logger)

	run := db.AnalysisRun{
		ID:                runID,
		Source:            source,
		CreatedAt:         time.Now().UTC(),
		TotalShifts:       summary.TotalShifts,
		ClaimedShifts:     summary.ClaimedShifts,
		NeverClaimed:      summary.NeverClaimed,
		CleanShifts:       summary.CleanTotalShifts,
		ExcludedCanceled:  summary.Audit.Canceled,
		ExcludedNCNS:      summary.Audit.NoCallNoShow,
		ExcludedNotWorked: summary.Audit.FirstClaimNotWorked,
		ExcludedTotal:     summary.Audit.TotalExcluded,
		ClaimedProfit:     profit.Totals.ClaimedProfit,
		UnclaimedProfit:   profit.Totals.UnclaimedProfit,
		ClaimedHours:      profit.Hours.ClaimedHours,
		UnclaimedHours:    profit.Hours.UnclaimedHours,
	}

	logger.Debug("Storing analysis run", zap.String("run_id", runID), zap.String("source", source))

	if err := store.InsertAnalysisRun(ctx, run); err != nil {
		return "", fmt.Errorf("failed to insert analysis run: %w", err)
	}

	durationStats := DurationReport(result, nil, logger)
	durationRows := make([]db.DurationStat, 0, len(durationStats))
	for _, s := range durationStats {
		durationRows = append(durationRows, db.DurationStat{
			RunID:         runID,
			DurationHours: s.DurationHours,
			Claimed:       s.Claimed,
			NotClaimed:    s.NotClaimed,
			Total:         s.Total,
			PctClaimed:    s.PctClaimed,
		})
	}
	if err := store.InsertDurationStats(ctx, durationRows); err != nil {
		return "", fmt.Errorf("failed to insert duration stats: %w", err)
	}

	latency := LatencyReport(result, buckets.DefaultLatencyConfig(), logger)
	latencyRows := make([]db.LatencyStat, 0, len(latency.Buckets))
	for _, b := range latency.Buckets {
		latencyRows = append(latencyRows, db.LatencyStat{
			RunID:       runID,
			LowHours:    b.LowHours,
			HighHours:   b.HighHours,
			Total:       b.Total,
			Claimed:     b.Claimed,
			PctClaimed:  b.PctClaimed,
			Significant: b.Significant,
		})
	}
	if err := store.InsertLatencyStats(ctx, latencyRows); err != nil {
		return "", fmt.Errorf("failed to insert latency stats: %w", err)
	}

	logger.Info("Stored analysis run",
		zap.String("run_id", runID),
		zap.Int("duration_rows", len(durationRows)),
		zap.Int("latency_rows", len(latencyRows)))

	return runID, nil
}
