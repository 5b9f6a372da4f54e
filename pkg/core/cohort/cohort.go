package cohort

import (
	"fmt"

	"github.com/jdcarver/shift-analytics/pkg/core/claims"
	"github.com/jdcarver/shift-analytics/pkg/core/ingest"
	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// Filter applies the exclusion rules to produce the clean analytic cohort.
//
// A shift is excluded when any of these hold:
//  1. any of its events has a non-null canceled_at,
//  2. any of its events has is_ncns == true (vacuous when the column is
//     absent),
//  3. it is claimed and its first claimer did not work.
//
// Exclusion is all-or-nothing per shift: every event of an excluded shift is
// dropped, not just the offending row. The returned cohort carries the
// resolution recomputed over the surviving events, an audit of how many
// shifts each criterion removed, and the list of columns dropped from the
// output schema (the consumed verification columns plus any column left with
// no non-null values).
//
// Filtering is idempotent: running it again on its own output changes
// nothing, because every trigger row is gone from the survivors.
func Filter(table *model.EventTable, resolution *model.Resolution) (*model.Cohort, error) {
	canceled := make(map[string]bool)
	ncns := make(map[string]bool)
	for i := range table.Events {
		ev := &table.Events[i]
		if ev.CanceledAt != nil {
			canceled[ev.ShiftID] = true
		}
		if table.HasNCNS && ev.IsNCNS != nil && *ev.IsNCNS {
			ncns[ev.ShiftID] = true
		}
	}

	notWorked := make(map[string]bool)
	for _, shiftID := range resolution.ShiftIDs {
		outcome, ok := resolution.Outcomes[shiftID]
		if !ok {
			return nil, fmt.Errorf("internal invariant violated: shift %s has no resolved outcome", shiftID)
		}
		if outcome.Claimed && outcome.FirstClaim == nil {
			return nil, fmt.Errorf("internal invariant violated: shift %s is claimed but has no first claim", shiftID)
		}
		if outcome.Claimed && !outcome.Worked {
			notWorked[shiftID] = true
		}
	}

	excluded := make(map[string]bool)
	for id := range canceled {
		excluded[id] = true
	}
	for id := range ncns {
		excluded[id] = true
	}
	for id := range notWorked {
		excluded[id] = true
	}

	filtered := make([]model.OfferEvent, 0, len(table.Events))
	for _, ev := range table.Events {
		if excluded[ev.ShiftID] {
			continue
		}
		// Defensive re-check: no surviving row may be a no-call-no-show.
		// Should always hold by construction.
		if table.HasNCNS && ev.IsNCNS != nil && *ev.IsNCNS {
			continue
		}
		filtered = append(filtered, ev)
	}

	cleanTable := &model.EventTable{
		Events:      filtered,
		HasVerified: false, // consumed as an exclusion criterion, dropped
		HasNCNS:     false, // dropped from the clean schema
	}

	cleanResolution := claims.Resolve(cleanTable)

	return &model.Cohort{
		Table:      cleanTable,
		Resolution: cleanResolution,
		Audit: model.ExclusionAudit{
			Canceled:            len(canceled),
			NoCallNoShow:        len(ncns),
			FirstClaimNotWorked: len(notWorked),
			TotalExcluded:       len(excluded),
		},
		DroppedColumns: droppedColumns(table, filtered),
	}, nil
}

// droppedColumns lists the columns removed from the clean cohort's schema:
// the verification columns (when they were present at ingestion) and any
// column with no non-null value left in any surviving row.
func droppedColumns(table *model.EventTable, filtered []model.OfferEvent) []string {
	var dropped []string
	if table.HasVerified {
		dropped = append(dropped, ingest.ColIsVerified)
	}
	if table.HasNCNS {
		dropped = append(dropped, ingest.ColIsNCNS)
	}

	allNil := func(get func(*model.OfferEvent) bool) bool {
		for i := range filtered {
			if get(&filtered[i]) {
				return false
			}
		}
		return true
	}

	nullable := []struct {
		name   string
		nonNil func(*model.OfferEvent) bool
	}{
		{ingest.ColPayRate, func(e *model.OfferEvent) bool { return e.PayRate != nil }},
		{ingest.ColChargeRate, func(e *model.OfferEvent) bool { return e.ChargeRate != nil }},
		{ingest.ColDuration, func(e *model.OfferEvent) bool { return e.DurationHours != nil }},
		{ingest.ColShiftStartAt, func(e *model.OfferEvent) bool { return e.ShiftStartAt != nil }},
		{ingest.ColOfferViewedAt, func(e *model.OfferEvent) bool { return e.OfferViewedAt != nil }},
		{ingest.ColClaimedAt, func(e *model.OfferEvent) bool { return e.ClaimedAt != nil }},
		{ingest.ColCanceledAt, func(e *model.OfferEvent) bool { return e.CanceledAt != nil }},
	}

	for _, col := range nullable {
		if allNil(col.nonNil) {
			dropped = append(dropped, col.name)
		}
	}

	return dropped
}
