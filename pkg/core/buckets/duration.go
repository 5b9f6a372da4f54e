package buckets

import (
	"math"
	"sort"

	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// ByDuration groups clean-cohort shifts by their exact duration value and
// computes claimed/unclaimed counts plus the claim percentage, rounded to
// one decimal. Counts are of unique shifts, so raw claim counts keep every
// shift regardless of whether it later qualifies for margin figures.
func ByDuration(c *model.Cohort) []model.DurationStat {
	type key struct {
		duration float64
		claimed  bool
	}
	seen := make(map[string]bool)
	counts := make(map[key]int)

	for i := range c.Table.Events {
		ev := &c.Table.Events[i]
		if ev.DurationHours == nil || seen[ev.ShiftID] {
			continue
		}
		seen[ev.ShiftID] = true
		outcome := c.Resolution.Outcomes[ev.ShiftID]
		counts[key{*ev.DurationHours, outcome.Claimed}]++
	}

	byDuration := make(map[float64]*model.DurationStat)
	for k, n := range counts {
		stat, ok := byDuration[k.duration]
		if !ok {
			stat = &model.DurationStat{DurationHours: k.duration}
			byDuration[k.duration] = stat
		}
		if k.claimed {
			stat.Claimed += n
		} else {
			stat.NotClaimed += n
		}
	}

	stats := make([]model.DurationStat, 0, len(byDuration))
	for _, stat := range byDuration {
		stat.Total = stat.Claimed + stat.NotClaimed
		stat.PctClaimed = round1(float64(stat.Claimed) / float64(stat.Total) * 100)
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].DurationHours < stats[j].DurationHours
	})

	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
