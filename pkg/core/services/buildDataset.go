package services

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/pkg/core/claims"
	"github.com/jdcarver/shift-analytics/pkg/core/cohort"
	"github.com/jdcarver/shift-analytics/pkg/core/ingest"
	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// DatasetResult is the canonical analytic dataset every report consumes: the
// raw normalized events, the resolution over the full set, and the clean
// cohort with its recomputed resolution and exclusion audit. Building it
// once here keeps the first-claim and exclusion semantics identical across
// every downstream report.
type DatasetResult struct {
	Raw            *model.EventTable
	FullResolution *model.Resolution
	Cohort         *model.Cohort
}

// BuildDataset runs the full pipeline over a raw CSV snapshot:
// ingest -> resolve claims -> filter exclusions -> resolve again over the
// clean cohort.
func BuildDataset(r io.Reader, logger *zap.Logger) (*DatasetResult, error) {
	logger.Debug("Reading raw offer events")
	table, err := ingest.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest events: %w", err)
	}
	logger.Debug("Normalized events",
		zap.Int("rows", len(table.Events)),
		zap.Bool("has_verified", table.HasVerified),
		zap.Bool("has_ncns", table.HasNCNS))

	logger.Debug("Resolving claims over full event set")
	resolution := claims.Resolve(table)
	logger.Debug("Resolved shifts",
		zap.Int("total", resolution.TotalShifts()),
		zap.Int("claimed", resolution.ClaimedShifts()))

	logger.Debug("Applying exclusion filter")
	clean, err := cohort.Filter(table, resolution)
	if err != nil {
		return nil, fmt.Errorf("failed to filter cohort: %w", err)
	}
	logger.Info("Built clean cohort",
		zap.Int("shifts", clean.Resolution.TotalShifts()),
		zap.Int("excluded_total", clean.Audit.TotalExcluded),
		zap.Int("excluded_canceled", clean.Audit.Canceled),
		zap.Int("excluded_ncns", clean.Audit.NoCallNoShow),
		zap.Int("excluded_first_claim_not_worked", clean.Audit.FirstClaimNotWorked),
		zap.Strings("dropped_columns", clean.DroppedColumns))

	return &DatasetResult{
		Raw:            table,
		FullResolution: resolution,
		Cohort:         clean,
	}, nil
}
