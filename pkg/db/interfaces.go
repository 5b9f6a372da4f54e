package db

import "context"

// ReportStore defines the persistence operations for analysis runs.
type ReportStore interface {
	InsertAnalysisRun(ctx context.Context, run AnalysisRun) error
	InsertDurationStats(ctx context.Context, stats []DurationStat) error
	InsertLatencyStats(ctx context.Context, stats []LatencyStat) error
	GetAnalysisRuns(ctx context.Context) ([]AnalysisRun, error)
}
