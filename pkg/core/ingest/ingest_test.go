package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Basic(t *testing.T) {
	input := strings.Join([]string{
		"SHIFT_ID,WORKPLACE_ID,PAY_RATE,CHARGE_RATE,DURATION,SHIFT_START_AT,OFFER_VIEWED_AT,CLAIMED_AT",
		"s1,w1,25.5,40,8,2025-03-01 07:00:00,2025-02-27 10:00:00,2025-02-27 10:05:00",
		"s1,w1,25.5,40,8,2025-03-01 07:00:00,2025-02-28 09:00:00,",
	}, "\n")

	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Events, 2)

	ev := table.Events[0]
	assert.Equal(t, "s1", ev.ShiftID)
	assert.Equal(t, "w1", ev.WorkplaceID)
	require.NotNil(t, ev.PayRate)
	assert.Equal(t, 25.5, *ev.PayRate)
	require.NotNil(t, ev.DurationHours)
	assert.Equal(t, 8.0, *ev.DurationHours)
	require.NotNil(t, ev.ClaimedAt)
	assert.True(t, ev.IsClaim())

	assert.Nil(t, table.Events[1].ClaimedAt)
	assert.False(t, table.Events[1].IsClaim())
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestNormalize_MissingShiftIDColumn(t *testing.T) {
	_, err := Normalize([]string{"WORKPLACE_ID", "PAY_RATE"}, [][]string{{"w1", "25"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHIFT_ID")
}

func TestNormalize_TrimsHeaderNames(t *testing.T) {
	table, err := Normalize(
		[]string{" SHIFT_ID ", "  PAY_RATE"},
		[][]string{{"s1", "30"}},
	)
	require.NoError(t, err)
	require.Len(t, table.Events, 1)
	require.NotNil(t, table.Events[0].PayRate)
	assert.Equal(t, 30.0, *table.Events[0].PayRate)
}

func TestNormalize_DirtyValuesBecomeNil(t *testing.T) {
	table, err := Normalize(
		[]string{"SHIFT_ID", "PAY_RATE", "SHIFT_START_AT", "CLAIMED_AT"},
		[][]string{
			{"s1", "not-a-number", "not-a-date", "also wrong"},
		},
	)
	require.NoError(t, err)
	require.Len(t, table.Events, 1)

	ev := table.Events[0]
	assert.Nil(t, ev.PayRate)
	assert.Nil(t, ev.ShiftStartAt)
	assert.Nil(t, ev.ClaimedAt)
	assert.False(t, ev.IsClaim())
}

func TestNormalize_SkipsRowsWithoutShiftID(t *testing.T) {
	table, err := Normalize(
		[]string{"SHIFT_ID", "PAY_RATE"},
		[][]string{
			{"", "25"},
			{"   ", "30"},
			{"s1", "35"},
		},
	)
	require.NoError(t, err)
	require.Len(t, table.Events, 1)
	assert.Equal(t, "s1", table.Events[0].ShiftID)
}

func TestNormalize_ShortRows(t *testing.T) {
	table, err := Normalize(
		[]string{"SHIFT_ID", "PAY_RATE", "CHARGE_RATE"},
		[][]string{{"s1"}},
	)
	require.NoError(t, err)
	require.Len(t, table.Events, 1)
	assert.Nil(t, table.Events[0].PayRate)
	assert.Nil(t, table.Events[0].ChargeRate)
}

func TestNormalize_VerificationColumnsTriState(t *testing.T) {
	// Columns absent: flags off, values stay nil.
	table, err := Normalize([]string{"SHIFT_ID"}, [][]string{{"s1"}})
	require.NoError(t, err)
	assert.False(t, table.HasVerified)
	assert.False(t, table.HasNCNS)
	assert.Nil(t, table.Events[0].IsVerified)

	// Columns present: flags on, null cells distinct from false.
	table, err = Normalize(
		[]string{"SHIFT_ID", "IS_VERIFIED", "IS_NCNS"},
		[][]string{
			{"s1", "true", "false"},
			{"s2", "", ""},
			{"s3", "FALSE", "True"},
		},
	)
	require.NoError(t, err)
	assert.True(t, table.HasVerified)
	assert.True(t, table.HasNCNS)

	require.NotNil(t, table.Events[0].IsVerified)
	assert.True(t, *table.Events[0].IsVerified)
	assert.Nil(t, table.Events[1].IsVerified)
	assert.Nil(t, table.Events[1].IsNCNS)
	require.NotNil(t, table.Events[2].IsNCNS)
	assert.True(t, *table.Events[2].IsNCNS)
	require.NotNil(t, table.Events[2].IsVerified)
	assert.False(t, *table.Events[2].IsVerified)
}

func TestNormalize_TimestampLayouts(t *testing.T) {
	table, err := Normalize(
		[]string{"SHIFT_ID", "SHIFT_START_AT"},
		[][]string{
			{"s1", "2025-03-01T07:00:00Z"},
			{"s2", "2025-03-01 07:00:00"},
			{"s3", "2025-03-01"},
		},
	)
	require.NoError(t, err)
	require.Len(t, table.Events, 3)

	for i, ev := range table.Events {
		require.NotNil(t, ev.ShiftStartAt, "row %d", i)
	}
	assert.Equal(t, time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC), *table.Events[0].ShiftStartAt)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *table.Events[2].ShiftStartAt)
}
