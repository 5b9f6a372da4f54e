package buckets

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// HolidayDates expands a set of RRULE strings into the calendar dates they
// produce within [from, until], keyed by yyyy-mm-dd. Rules carry no DTSTART
// of their own; each rule is anchored at the start of the range before
// expansion.
func HolidayDates(rules []string, from, until time.Time) (map[string]bool, error) {
	dates := make(map[string]bool)
	for i, raw := range rules {
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday rrule [%d] %q: %w", i, raw, err)
		}
		r.DTStart(from)
		for _, occ := range r.Between(from, until, true) {
			dates[occ.Format("2006-01-02")] = true
		}
	}
	return dates, nil
}

// ByHoliday splits per-shift economics by whether the shift starts on one of
// the given holiday dates, and summarizes shift counts, claim percentage and
// average margin for each side. The returned slice always has two entries:
// holidays first, then everything else.
func ByHoliday(econ []model.ShiftEconomics, holidays map[string]bool) []model.HolidayStat {
	var stats [2]struct {
		shifts    int
		claimed   int
		marginSum float64
	}

	for _, e := range econ {
		idx := 1
		if holidays[e.ShiftStartAt.Format("2006-01-02")] {
			idx = 0
		}
		stats[idx].shifts++
		if e.Claimed {
			stats[idx].claimed++
		}
		stats[idx].marginSum += e.ProfitMarginPct
	}

	out := make([]model.HolidayStat, 2)
	for i, s := range stats {
		stat := model.HolidayStat{
			Holiday:       i == 0,
			Shifts:        s.shifts,
			ClaimedShifts: s.claimed,
		}
		if s.shifts > 0 {
			stat.AvgMarginPct = s.marginSum / float64(s.shifts)
			stat.PctShiftsClaimed = round1(float64(s.claimed) / float64(s.shifts) * 100)
		}
		out[i] = stat
	}
	return out
}
