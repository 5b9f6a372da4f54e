package db

import "time"

// AnalysisRun is one persisted run of the analytics pipeline over a
// snapshot, with the headline counts and the exclusion audit.
type AnalysisRun struct {
	ID                string
	Source            string
	CreatedAt         time.Time
	TotalShifts       int
	ClaimedShifts     int
	NeverClaimed      int
	CleanShifts       int
	ExcludedCanceled  int
	ExcludedNCNS      int
	ExcludedNotWorked int
	ExcludedTotal     int
	ClaimedProfit     float64
	UnclaimedProfit   float64
	ClaimedHours      float64
	UnclaimedHours    float64
}

// DurationStat is one per-duration claim summary row for a run.
type DurationStat struct {
	RunID         string
	DurationHours float64
	Claimed       int
	NotClaimed    int
	Total         int
	PctClaimed    float64
}

// LatencyStat is one view-to-start latency bucket row for a run.
type LatencyStat struct {
	RunID       string
	LowHours    int
	HighHours   int
	Total       int
	Claimed     int
	PctClaimed  float64
	Significant bool
}
