package cohort

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcarver/shift-analytics/pkg/core/claims"
	"github.com/jdcarver/shift-analytics/pkg/core/ingest"
	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

func tp(t time.Time) *time.Time { return &t }
func bp(b bool) *bool           { return &b }
func fp(f float64) *float64     { return &f }

var base = time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)

func filter(t *testing.T, table *model.EventTable) *model.Cohort {
	t.Helper()
	c, err := Filter(table, claims.Resolve(table))
	require.NoError(t, err)
	return c
}

func TestFilter_ExcludesCanceledShifts(t *testing.T) {
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1", CanceledAt: tp(base)},
			{ShiftID: "s1"}, // same shift, clean row: goes too
			{ShiftID: "s2"},
		},
	}

	c := filter(t, table)
	require.Len(t, c.Table.Events, 1)
	assert.Equal(t, "s2", c.Table.Events[0].ShiftID)
	assert.Equal(t, 1, c.Audit.Canceled)
	assert.Equal(t, 1, c.Audit.TotalExcluded)
}

func TestFilter_ExcludesNoCallNoShowShifts(t *testing.T) {
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1", IsNCNS: bp(true)},
			{ShiftID: "s1", IsNCNS: bp(false)},
			{ShiftID: "s2", IsNCNS: bp(false)},
		},
		HasNCNS: true,
	}

	c := filter(t, table)
	require.Len(t, c.Table.Events, 1)
	assert.Equal(t, "s2", c.Table.Events[0].ShiftID)
	assert.Equal(t, 1, c.Audit.NoCallNoShow)
}

func TestFilter_ExcludesFirstClaimNotWorked(t *testing.T) {
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1", ClaimedAt: tp(base), IsVerified: bp(false)},
			{ShiftID: "s2", ClaimedAt: tp(base), IsVerified: bp(true)},
			{ShiftID: "s3"}, // never claimed stays in
		},
		HasVerified: true,
	}

	c := filter(t, table)
	require.Len(t, c.Table.Events, 2)
	assert.Equal(t, "s2", c.Table.Events[0].ShiftID)
	assert.Equal(t, "s3", c.Table.Events[1].ShiftID)
	assert.Equal(t, 1, c.Audit.FirstClaimNotWorked)
}

func TestFilter_AuditCountsOverlap(t *testing.T) {
	// One shift trips every criterion; the union counts it once.
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1", ClaimedAt: tp(base), IsVerified: bp(false), IsNCNS: bp(true), CanceledAt: tp(base)},
			{ShiftID: "s2"},
		},
		HasVerified: true,
		HasNCNS:     true,
	}

	c := filter(t, table)
	assert.Equal(t, 1, c.Audit.Canceled)
	assert.Equal(t, 1, c.Audit.NoCallNoShow)
	assert.Equal(t, 1, c.Audit.FirstClaimNotWorked)
	assert.Equal(t, 1, c.Audit.TotalExcluded)
	assert.Equal(t, 1, c.Resolution.TotalShifts())
}

func TestFilter_NCNSIgnoredWhenColumnAbsent(t *testing.T) {
	// Flag values may linger on events, but with HasNCNS false they carry
	// no meaning.
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1", IsNCNS: bp(true)},
		},
		HasNCNS: false,
	}

	c := filter(t, table)
	assert.Len(t, c.Table.Events, 1)
	assert.Equal(t, 0, c.Audit.NoCallNoShow)
}

func TestFilter_Idempotent(t *testing.T) {
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1", CanceledAt: tp(base)},
			{ShiftID: "s2", ClaimedAt: tp(base), IsVerified: bp(false)},
			{ShiftID: "s3", ClaimedAt: tp(base), IsVerified: bp(true)},
			{ShiftID: "s4", IsNCNS: bp(true)},
			{ShiftID: "s5"},
		},
		HasVerified: true,
		HasNCNS:     true,
	}

	once := filter(t, table)
	twice := filter(t, once.Table)

	assert.Equal(t, len(once.Table.Events), len(twice.Table.Events))
	assert.Equal(t, 0, twice.Audit.TotalExcluded)
	assert.Equal(t, once.Resolution.TotalShifts(), twice.Resolution.TotalShifts())
}

func TestFilter_ResolutionRecomputedOverSurvivors(t *testing.T) {
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1", ClaimedAt: tp(base), IsVerified: bp(true)},
			{ShiftID: "s2", ClaimedAt: tp(base), IsVerified: bp(false)},
			{ShiftID: "s3"},
		},
		HasVerified: true,
	}

	c := filter(t, table)
	assert.Equal(t, 2, c.Resolution.TotalShifts())
	assert.Equal(t, 1, c.Resolution.ClaimedShifts())

	// The clean table no longer carries the verification column, so the
	// surviving claim defaults to worked.
	assert.False(t, c.Table.HasVerified)
	assert.True(t, c.Resolution.Outcomes["s1"].Worked)
}

func TestFilter_DroppedColumns(t *testing.T) {
	table := &model.EventTable{
		Events: []model.OfferEvent{
			{ShiftID: "s1", PayRate: fp(25), ClaimedAt: tp(base), IsVerified: bp(true)},
			{ShiftID: "s2", PayRate: fp(30)},
		},
		HasVerified: true,
		HasNCNS:     true,
	}

	c := filter(t, table)

	// Verification columns always go; columns with no surviving non-null
	// value go too (no canceled row survives by construction).
	assert.Contains(t, c.DroppedColumns, ingest.ColIsVerified)
	assert.Contains(t, c.DroppedColumns, ingest.ColIsNCNS)
	assert.Contains(t, c.DroppedColumns, ingest.ColCanceledAt)
	assert.Contains(t, c.DroppedColumns, ingest.ColChargeRate)
	assert.NotContains(t, c.DroppedColumns, ingest.ColPayRate)
	assert.NotContains(t, c.DroppedColumns, ingest.ColClaimedAt)
}

func TestFilter_EmptyTable(t *testing.T) {
	c := filter(t, &model.EventTable{})
	assert.Empty(t, c.Table.Events)
	assert.Equal(t, 0, c.Audit.TotalExcluded)
	assert.Equal(t, 0, c.Resolution.TotalShifts())
}
