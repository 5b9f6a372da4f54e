package postgres

import (
	"context"
	"fmt"

	"github.com/jdcarver/shift-analytics/pkg/db"
)

// InsertAnalysisRun inserts one analysis run record.
func (d *DB) InsertAnalysisRun(ctx context.Context, run db.AnalysisRun) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO analysis_run (
			id, source, created_at,
			total_shifts, claimed_shifts, never_claimed, clean_shifts,
			excluded_canceled, excluded_ncns, excluded_not_worked, excluded_total,
			claimed_profit, unclaimed_profit, claimed_hours, unclaimed_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		run.ID, run.Source, run.CreatedAt,
		run.TotalShifts, run.ClaimedShifts, run.NeverClaimed, run.CleanShifts,
		run.ExcludedCanceled, run.ExcludedNCNS, run.ExcludedNotWorked, run.ExcludedTotal,
		run.ClaimedProfit, run.UnclaimedProfit, run.ClaimedHours, run.UnclaimedHours,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return nil
}

// InsertDurationStats inserts the per-duration claim rows for a run.
func (d *DB) InsertDurationStats(ctx context.Context, stats []db.DurationStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range stats {
		_, err := tx.Exec(ctx, `
			INSERT INTO duration_stat (run_id, duration_hours, claimed, not_claimed, total, pct_claimed)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.RunID, s.DurationHours, s.Claimed, s.NotClaimed, s.Total, s.PctClaimed)
		if err != nil {
			return fmt.Errorf("failed to insert duration stat: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit duration stats: %w", err)
	}
	return nil
}

// InsertLatencyStats inserts the latency bucket rows for a run.
func (d *DB) InsertLatencyStats(ctx context.Context, stats []db.LatencyStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range stats {
		_, err := tx.Exec(ctx, `
			INSERT INTO latency_stat (run_id, low_hours, high_hours, total, claimed, pct_claimed, significant)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, s.RunID, s.LowHours, s.HighHours, s.Total, s.Claimed, s.PctClaimed, s.Significant)
		if err != nil {
			return fmt.Errorf("failed to insert latency stat: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit latency stats: %w", err)
	}
	return nil
}

// GetAnalysisRuns retrieves all stored runs, most recent first.
func (d *DB) GetAnalysisRuns(ctx context.Context) ([]db.AnalysisRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, source, created_at,
			total_shifts, claimed_shifts, never_claimed, clean_shifts,
			excluded_canceled, excluded_ncns, excluded_not_worked, excluded_total,
			claimed_profit, unclaimed_profit, claimed_hours, unclaimed_hours
		FROM analysis_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []db.AnalysisRun
	for rows.Next() {
		var r db.AnalysisRun
		if err := rows.Scan(
			&r.ID, &r.Source, &r.CreatedAt,
			&r.TotalShifts, &r.ClaimedShifts, &r.NeverClaimed, &r.CleanShifts,
			&r.ExcludedCanceled, &r.ExcludedNCNS, &r.ExcludedNotWorked, &r.ExcludedTotal,
			&r.ClaimedProfit, &r.UnclaimedProfit, &r.ClaimedHours, &r.UnclaimedHours,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}

	return runs, nil
}
