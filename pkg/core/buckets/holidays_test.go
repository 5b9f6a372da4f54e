package buckets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

func TestHolidayDates_ExpandsRules(t *testing.T) {
	rules := []string{
		"FREQ=YEARLY;BYMONTH=7;BYMONTHDAY=4",
		"FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25",
	}

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	dates, err := HolidayDates(rules, from, until)
	require.NoError(t, err)

	assert.True(t, dates["2025-07-04"])
	assert.True(t, dates["2026-07-04"])
	assert.True(t, dates["2025-12-25"])
	assert.False(t, dates["2025-07-05"])
	assert.Len(t, dates, 4)
}

func TestHolidayDates_InvalidRule(t *testing.T) {
	_, err := HolidayDates([]string{"not an rrule"}, time.Now(), time.Now())
	assert.Error(t, err)
}

func TestByHoliday_SplitsByStartDate(t *testing.T) {
	holidays := map[string]bool{"2025-07-04": true}

	econ := []model.ShiftEconomics{
		{ShiftID: "s1", Claimed: true, ShiftStartAt: time.Date(2025, 7, 4, 7, 0, 0, 0, time.UTC), ProfitMarginPct: 10},
		{ShiftID: "s2", Claimed: false, ShiftStartAt: time.Date(2025, 7, 4, 19, 0, 0, 0, time.UTC), ProfitMarginPct: 30},
		{ShiftID: "s3", Claimed: true, ShiftStartAt: time.Date(2025, 7, 5, 7, 0, 0, 0, time.UTC), ProfitMarginPct: 40},
	}

	stats := ByHoliday(econ, holidays)
	require.Len(t, stats, 2)

	holiday := stats[0]
	assert.True(t, holiday.Holiday)
	assert.Equal(t, 2, holiday.Shifts)
	assert.Equal(t, 1, holiday.ClaimedShifts)
	assert.InDelta(t, 20.0, holiday.AvgMarginPct, 1e-9)
	assert.Equal(t, 50.0, holiday.PctShiftsClaimed)

	other := stats[1]
	assert.False(t, other.Holiday)
	assert.Equal(t, 1, other.Shifts)
	assert.InDelta(t, 40.0, other.AvgMarginPct, 1e-9)
	assert.Equal(t, 100.0, other.PctShiftsClaimed)
}

func TestByHoliday_EmptySideStaysZero(t *testing.T) {
	econ := []model.ShiftEconomics{
		{ShiftID: "s1", ShiftStartAt: time.Date(2025, 7, 5, 7, 0, 0, 0, time.UTC)},
	}

	stats := ByHoliday(econ, map[string]bool{"2025-07-04": true})
	require.Len(t, stats, 2)
	assert.Equal(t, 0, stats[0].Shifts)
	assert.Equal(t, 0.0, stats[0].AvgMarginPct)
	assert.Equal(t, 0.0, stats[0].PctShiftsClaimed)
}
