package claims

import (
	"sort"

	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// Resolve computes, per shift, whether the shift was claimed, which event is
// the first claim, and whether the first claimer worked.
//
// Events are partitioned by shift id in ingestion order. Within a shift the
// claim events are sorted ascending by claimed_at with a stable sort, so an
// exact timestamp tie resolves to whichever claim appeared first in the
// input. That tie-break is a deliberate contract, not an accident of the
// sort: it depends only on the shift's own event order, never on global
// iteration order, which keeps resolution deterministic if shifts are ever
// processed in parallel.
//
// Verification is asymmetric by design. When the IS_VERIFIED column is
// present, a missing value on the first claim defaults to false (the claimer
// is not known to have worked). When the column is absent from the dataset
// entirely, every first claimer is assumed to have worked.
func Resolve(table *model.EventTable) *model.Resolution {
	res := &model.Resolution{
		Outcomes: make(map[string]*model.ShiftOutcome),
	}

	byShift := make(map[string][]*model.OfferEvent)
	for i := range table.Events {
		ev := &table.Events[i]
		if _, seen := byShift[ev.ShiftID]; !seen {
			res.ShiftIDs = append(res.ShiftIDs, ev.ShiftID)
		}
		byShift[ev.ShiftID] = append(byShift[ev.ShiftID], ev)
	}

	for _, shiftID := range res.ShiftIDs {
		outcome := &model.ShiftOutcome{ShiftID: shiftID}

		var claimEvents []*model.OfferEvent
		for _, ev := range byShift[shiftID] {
			if ev.IsClaim() {
				claimEvents = append(claimEvents, ev)
			}
		}

		if len(claimEvents) > 0 {
			outcome.Claimed = true
			sort.SliceStable(claimEvents, func(i, j int) bool {
				return claimEvents[i].ClaimedAt.Before(*claimEvents[j].ClaimedAt)
			})
			outcome.FirstClaim = claimEvents[0]
			outcome.Worked = firstClaimWorked(outcome.FirstClaim, table.HasVerified)
		}

		res.Outcomes[shiftID] = outcome
	}

	return res
}

// RealizedClaim returns the event carrying the rate that was actually
// realized for a claimed shift: the latest claim to stand. In the clean
// cohort (where canceled shifts are gone) this is usually the only claim
// and coincides with the first claim.
func RealizedClaim(table *model.EventTable, shiftID string) *model.OfferEvent {
	var realized *model.OfferEvent
	for i := range table.Events {
		ev := &table.Events[i]
		if ev.ShiftID != shiftID || !ev.IsClaim() {
			continue
		}
		if realized == nil || ev.ClaimedAt.After(*realized.ClaimedAt) {
			realized = ev
		}
	}
	return realized
}

func firstClaimWorked(firstClaim *model.OfferEvent, hasVerifiedColumn bool) bool {
	if !hasVerifiedColumn {
		return true
	}
	return firstClaim.IsVerified != nil && *firstClaim.IsVerified
}
