package services

import (
	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// ClaimSummaryResult counts the claim-outcome partition over the full event
// set and over the clean cohort, plus the exclusion audit. The partition is
// exhaustive: TotalShifts == FirstClaimsWorked + FirstClaimsNotWorked +
// NeverClaimed.
type ClaimSummaryResult struct {
	TotalShifts          int
	ClaimedShifts        int
	NeverClaimed         int
	FirstClaimsWorked    int
	FirstClaimsNotWorked int

	PctWorked       float64
	PctNotWorked    float64
	PctNeverClaimed float64

	CleanTotalShifts  int
	CleanNeverClaimed int
	Audit             model.ExclusionAudit
}

// ClaimSummary derives the headline claim counts from a built dataset.
func ClaimSummary(result *DatasetResult, logger *zap.Logger) ClaimSummaryResult {
	full := result.FullResolution

	summary := ClaimSummaryResult{
		TotalShifts:   full.TotalShifts(),
		ClaimedShifts: full.ClaimedShifts(),
		Audit:         result.Cohort.Audit,
	}
	summary.NeverClaimed = summary.TotalShifts - summary.ClaimedShifts

	for _, shiftID := range full.ShiftIDs {
		outcome := full.Outcomes[shiftID]
		if !outcome.Claimed {
			continue
		}
		if outcome.Worked {
			summary.FirstClaimsWorked++
		} else {
			summary.FirstClaimsNotWorked++
		}
	}

	if summary.TotalShifts > 0 {
		total := float64(summary.TotalShifts)
		summary.PctWorked = float64(summary.FirstClaimsWorked) / total * 100
		summary.PctNotWorked = float64(summary.FirstClaimsNotWorked) / total * 100
		summary.PctNeverClaimed = float64(summary.NeverClaimed) / total * 100
	}

	clean := result.Cohort.Resolution
	summary.CleanTotalShifts = clean.TotalShifts()
	summary.CleanNeverClaimed = clean.TotalShifts() - clean.ClaimedShifts()

	logger.Debug("Claim summary",
		zap.Int("total_shifts", summary.TotalShifts),
		zap.Int("claimed", summary.ClaimedShifts),
		zap.Int("never_claimed", summary.NeverClaimed),
		zap.Int("clean_total", summary.CleanTotalShifts))

	return summary
}
