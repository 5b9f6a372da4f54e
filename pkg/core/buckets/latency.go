package buckets

import (
	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// Latency bucketing defaults: 24-hour-wide buckets over [0, 720) hours
// (30 days), with a 50-shift significance floor on percentage rows.
const (
	DefaultWindowHours      = 720
	DefaultBucketHours      = 24
	DefaultSignificantTotal = 50
)

// LatencyConfig tunes the view-to-start latency bucketing.
type LatencyConfig struct {
	WindowHours      int
	BucketHours      int
	SignificantTotal int
}

// DefaultLatencyConfig returns the standard 30-day, 1-day-bucket setup.
func DefaultLatencyConfig() LatencyConfig {
	return LatencyConfig{
		WindowHours:      DefaultWindowHours,
		BucketHours:      DefaultBucketHours,
		SignificantTotal: DefaultSignificantTotal,
	}
}

// hoursBeforeStart computes how many hours before the shift start the offer
// was viewed. Returns false for rows missing either timestamp or where the
// offer was viewed after the start - that is invalid data, not zero latency,
// and the row is dropped from latency bucketing (only).
func hoursBeforeStart(ev *model.OfferEvent) (float64, bool) {
	if ev.ShiftStartAt == nil || ev.OfferViewedAt == nil {
		return 0, false
	}
	diff := ev.ShiftStartAt.Sub(*ev.OfferViewedAt).Hours()
	if diff < 0 {
		return 0, false
	}
	return diff, true
}

// ByViewLatency assigns clean-cohort rows to fixed-width latency buckets and
// computes the claim percentage per bucket. Counts are unique shifts within
// each bucket; a shift viewed in several windows counts in each of them. A
// bucket's percentage is only flagged significant when its total meets the
// floor - insignificant buckets stay in the output so the suppression is
// visible, but consumers must not report their percentages.
func ByViewLatency(c *model.Cohort, cfg LatencyConfig) []model.LatencyBucket {
	nBuckets := cfg.WindowHours / cfg.BucketHours
	totalSeen := make([]map[string]bool, nBuckets)
	claimedSeen := make([]map[string]bool, nBuckets)
	for i := range totalSeen {
		totalSeen[i] = make(map[string]bool)
		claimedSeen[i] = make(map[string]bool)
	}

	for i := range c.Table.Events {
		ev := &c.Table.Events[i]
		diff, ok := hoursBeforeStart(ev)
		if !ok {
			continue
		}
		idx := int(diff) / cfg.BucketHours
		if idx < 0 || idx >= nBuckets {
			continue
		}
		totalSeen[idx][ev.ShiftID] = true
		if c.Resolution.Outcomes[ev.ShiftID].Claimed {
			claimedSeen[idx][ev.ShiftID] = true
		}
	}

	out := make([]model.LatencyBucket, nBuckets)
	for i := range out {
		total := len(totalSeen[i])
		claimed := len(claimedSeen[i])
		b := model.LatencyBucket{
			LowHours:  i * cfg.BucketHours,
			HighHours: (i + 1) * cfg.BucketHours,
			Total:     total,
			Claimed:   claimed,
		}
		if total > 0 {
			b.PctClaimed = round1(float64(claimed) / float64(total) * 100)
		}
		b.Significant = total >= cfg.SignificantTotal
		out[i] = b
	}

	return out
}

// MarginByViewLatency computes the average margin per hour (charge rate
// minus governing pay rate) per day of view-to-start latency, for claimed
// and unclaimed shifts separately. Days run from 1 through the window's last
// full day; days with no shifts carry zero averages rather than being
// omitted, so the two series always align.
//
// Claimed averages run over claim rows (the realized rate at the claim).
// Unclaimed averages run over unique shifts at the highest rate ever
// offered - the counterfactual series.
func MarginByViewLatency(c *model.Cohort, cfg LatencyConfig) []model.MarginByDay {
	nDays := cfg.WindowHours / cfg.BucketHours

	claimedSum := make([]float64, nDays)
	claimedN := make([]int, nDays)
	unclaimedSum := make([]float64, nDays)
	unclaimedN := make([]int, nDays)

	unclaimedDay := make(map[string]int)
	unclaimedMax := make(map[string]float64)
	unclaimedCharge := make(map[string]float64)

	for i := range c.Table.Events {
		ev := &c.Table.Events[i]
		diff, ok := hoursBeforeStart(ev)
		if !ok {
			continue
		}
		day := int(diff) / cfg.BucketHours
		if day < 0 || day >= nDays {
			continue
		}

		outcome := c.Resolution.Outcomes[ev.ShiftID]
		if outcome.Claimed {
			if ev.IsClaim() && ev.PayRate != nil && ev.ChargeRate != nil {
				claimedSum[day] += *ev.ChargeRate - *ev.PayRate
				claimedN[day]++
			}
			continue
		}

		// Unclaimed: the first valid row fixes the shift's bucket and
		// charge rate; every row bids on the max offer.
		if _, seen := unclaimedDay[ev.ShiftID]; !seen && ev.ChargeRate != nil {
			unclaimedDay[ev.ShiftID] = day
			unclaimedCharge[ev.ShiftID] = *ev.ChargeRate
		}
		if ev.PayRate != nil {
			if cur, seen := unclaimedMax[ev.ShiftID]; !seen || *ev.PayRate > cur {
				unclaimedMax[ev.ShiftID] = *ev.PayRate
			}
		}
	}

	for shiftID, day := range unclaimedDay {
		maxPay, ok := unclaimedMax[shiftID]
		if !ok {
			continue
		}
		unclaimedSum[day] += unclaimedCharge[shiftID] - maxPay
		unclaimedN[day]++
	}

	// Day 0 (same-day views) is omitted to match the reported day-1..N axis.
	out := make([]model.MarginByDay, 0, nDays-1)
	for day := 1; day < nDays; day++ {
		m := model.MarginByDay{Day: day}
		if claimedN[day] > 0 {
			m.ClaimedAvgMargin = claimedSum[day] / float64(claimedN[day])
		}
		if unclaimedN[day] > 0 {
			m.UnclaimedAvgMargin = unclaimedSum[day] / float64(unclaimedN[day])
		}
		out = append(out, m)
	}

	return out
}
