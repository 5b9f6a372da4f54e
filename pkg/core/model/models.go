package model

import "time"

// OfferEvent represents one raw row of the shift-offer log: a single
// worker-view / claim / cancellation touchpoint for a shift.
// Nullable columns are pointers; nil means the value was missing or failed
// to parse. Events are immutable once ingested - transforms always produce
// new slices, never mutate in place.
type OfferEvent struct {
	ShiftID       string
	WorkplaceID   string
	PayRate       *float64
	ChargeRate    *float64
	DurationHours *float64 // canonical unit is hours, fixed at ingestion
	ShiftStartAt  *time.Time
	OfferViewedAt *time.Time
	ClaimedAt     *time.Time // non-nil means this event is a claim
	CanceledAt    *time.Time
	IsVerified    *bool // only meaningful when EventTable.HasVerified
	IsNCNS        *bool // only meaningful when EventTable.HasNCNS
}

// IsClaim reports whether this event represents a claim.
func (e *OfferEvent) IsClaim() bool {
	return e.ClaimedAt != nil
}

// EventTable is a normalized snapshot of offer events plus the tri-state
// information about the optional columns: an absent column is distinct from
// a column that is present but null for some rows.
type EventTable struct {
	Events      []OfferEvent
	HasVerified bool
	HasNCNS     bool
}

// ShiftOutcome is what the claim resolver derives for a single shift.
type ShiftOutcome struct {
	ShiftID    string
	Claimed    bool
	FirstClaim *OfferEvent // earliest claimed_at, nil when never claimed
	// Worked reflects the first claimer's verification status. Only
	// meaningful when Claimed. When the verification column is absent from
	// the dataset every first claim is assumed to have worked; when the
	// column is present, a missing value on the first claim means false.
	Worked bool
}

// Resolution holds the per-shift outcomes for one event set. Order reflects
// first appearance of each shift in the input.
type Resolution struct {
	Outcomes map[string]*ShiftOutcome
	ShiftIDs []string
}

// TotalShifts returns the number of distinct shifts.
func (r *Resolution) TotalShifts() int {
	return len(r.ShiftIDs)
}

// ClaimedShifts returns the number of shifts with at least one claim.
func (r *Resolution) ClaimedShifts() int {
	n := 0
	for _, id := range r.ShiftIDs {
		if r.Outcomes[id].Claimed {
			n++
		}
	}
	return n
}

// ExclusionAudit counts shifts dropped by the exclusion filter, per reason.
// A shift can match more than one criterion, so the per-reason counts can
// sum to more than TotalExcluded.
type ExclusionAudit struct {
	Canceled            int
	NoCallNoShow        int
	FirstClaimNotWorked int
	TotalExcluded       int
}

// Cohort is the clean analytic cohort: the events surviving the exclusion
// filter, the resolution recomputed over them, the audit of what was
// dropped, and the set of columns removed from the output schema.
type Cohort struct {
	Table          *EventTable
	Resolution     *Resolution
	Audit          ExclusionAudit
	DroppedColumns []string
}

// ShiftEconomics holds the derived per-shift economic metrics. For claimed
// shifts PayRate is the realized claim rate; for unclaimed shifts it is the
// highest rate ever offered and the figures are a counterfactual best case,
// not an observed outcome.
type ShiftEconomics struct {
	ShiftID         string
	WorkplaceID     string
	Claimed         bool
	Counterfactual  bool // true for unclaimed shifts: best case at max offer
	PayRate         float64
	ChargeRate      float64
	DurationHours   float64
	ShiftStartAt    time.Time
	ShiftEndAt      time.Time
	ProfitAbs       float64
	ProfitMarginPct float64
}

// DurationStat is the per-duration claim summary.
type DurationStat struct {
	DurationHours float64
	Claimed       int
	NotClaimed    int
	Total         int
	PctClaimed    float64 // rounded to one decimal
}

// LatencyBucket is one 24-hour-wide bucket of "hours between first view and
// shift start". The half-open interval is [LowHours, HighHours).
type LatencyBucket struct {
	LowHours    int
	HighHours   int
	Total       int
	Claimed     int
	PctClaimed  float64
	Significant bool // total >= the significance floor
}

// MarginByDay is the day-indexed average margin-per-hour pair used by the
// latency profit aggregation. Days with no shifts carry zero averages rather
// than being omitted.
type MarginByDay struct {
	Day                int // days between first view and shift start
	ClaimedAvgMargin   float64
	UnclaimedAvgMargin float64
}

// TimeOfDaySpan positions one shift's margin on a fractional hour-of-day
// axis. EndHour is greater than 24 when the shift runs past midnight.
type TimeOfDaySpan struct {
	ShiftID         string
	WorkplaceID     string
	Claimed         bool
	StartHour       float64
	EndHour         float64
	ProfitMarginPct float64
}

// HolidayStat compares margin behavior on holiday starts versus all other
// days.
type HolidayStat struct {
	Holiday          bool
	Shifts           int
	ClaimedShifts    int
	AvgMarginPct     float64
	PctShiftsClaimed float64
}
