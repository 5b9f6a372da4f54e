package buckets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcarver/shift-analytics/pkg/core/claims"
	"github.com/jdcarver/shift-analytics/pkg/core/cohort"
	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

func tp(t time.Time) *time.Time { return &t }
func fp(f float64) *float64     { return &f }

var base = time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)

func buildCohort(t *testing.T, table *model.EventTable) *model.Cohort {
	t.Helper()
	c, err := cohort.Filter(table, claims.Resolve(table))
	require.NoError(t, err)
	return c
}

func TestByDuration_CountsUniqueShifts(t *testing.T) {
	table := &model.EventTable{
		Events: []model.OfferEvent{
			// s1: 8h, claimed, three rows - counts once.
			{ShiftID: "s1", DurationHours: fp(8), ClaimedAt: tp(base)},
			{ShiftID: "s1", DurationHours: fp(8)},
			{ShiftID: "s1", DurationHours: fp(8)},
			// s2, s3: 8h, unclaimed.
			{ShiftID: "s2", DurationHours: fp(8)},
			{ShiftID: "s3", DurationHours: fp(8)},
			// s4: 12h, claimed.
			{ShiftID: "s4", DurationHours: fp(12), ClaimedAt: tp(base)},
		},
	}

	stats := ByDuration(buildCohort(t, table))
	require.Len(t, stats, 2)

	assert.Equal(t, 8.0, stats[0].DurationHours)
	assert.Equal(t, 1, stats[0].Claimed)
	assert.Equal(t, 2, stats[0].NotClaimed)
	assert.Equal(t, 3, stats[0].Total)
	assert.Equal(t, 33.3, stats[0].PctClaimed)

	assert.Equal(t, 12.0, stats[1].DurationHours)
	assert.Equal(t, 100.0, stats[1].PctClaimed)
}

func TestByDuration_MissingDurationSkipped(t *testing.T) {
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1"},
			{ShiftID: "s2", DurationHours: fp(8)},
		},
	}

	stats := ByDuration(buildCohort(t, table))
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Total)
}

func TestByDuration_SortedAscending(t *testing.T) {
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1", DurationHours: fp(12)},
			{ShiftID: "s2", DurationHours: fp(4)},
			{ShiftID: "s3", DurationHours: fp(8.5)},
		},
	}

	stats := ByDuration(buildCohort(t, table))
	require.Len(t, stats, 3)
	assert.Equal(t, 4.0, stats[0].DurationHours)
	assert.Equal(t, 8.5, stats[1].DurationHours)
	assert.Equal(t, 12.0, stats[2].DurationHours)
}
