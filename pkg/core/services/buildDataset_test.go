package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/pkg/core/buckets"
)

// sampleCSV covers every claim outcome and exclusion path:
//   - s1: claimed twice, first claimer verified, survives
//   - s2: claimed, first claimer not verified, excluded
//   - s3: never claimed, survives
//   - s4: canceled, excluded
//   - s5: no-call-no-show, excluded
const sampleCSV = `SHIFT_ID,WORKPLACE_ID,PAY_RATE,CHARGE_RATE,DURATION,SHIFT_START_AT,OFFER_VIEWED_AT,CLAIMED_AT,CANCELED_AT,IS_VERIFIED,IS_NCNS
s1,w1,25,40,8,2025-03-10 07:00:00,2025-03-08 10:00:00,2025-03-08 10:05:00,,true,false
s1,w1,28,40,8,2025-03-10 07:00:00,2025-03-08 11:00:00,2025-03-08 11:30:00,,true,false
s2,w1,25,40,8,2025-03-11 07:00:00,2025-03-09 10:00:00,2025-03-09 10:05:00,,false,false
s3,w2,30,50,10,2025-03-12 09:00:00,2025-03-10 10:00:00,,,,
s3,w2,33,50,10,2025-03-12 09:00:00,2025-03-11 10:00:00,,,,
s4,w2,30,50,10,2025-03-13 09:00:00,2025-03-11 10:00:00,,2025-03-12 08:00:00,,
s5,w3,20,35,12,2025-03-14 19:00:00,2025-03-12 10:00:00,2025-03-12 10:30:00,,true,true
`

func buildSample(t *testing.T) *DatasetResult {
	t.Helper()
	result, err := BuildDataset(strings.NewReader(sampleCSV), zap.NewNop())
	require.NoError(t, err)
	return result
}

func TestBuildDataset_Pipeline(t *testing.T) {
	result := buildSample(t)

	assert.Len(t, result.Raw.Events, 7)
	assert.True(t, result.Raw.HasVerified)
	assert.True(t, result.Raw.HasNCNS)

	assert.Equal(t, 5, result.FullResolution.TotalShifts())
	assert.Equal(t, 3, result.FullResolution.ClaimedShifts())

	assert.Equal(t, 2, result.Cohort.Resolution.TotalShifts())
	assert.Equal(t, 1, result.Cohort.Audit.Canceled)
	assert.Equal(t, 1, result.Cohort.Audit.NoCallNoShow)
	assert.Equal(t, 1, result.Cohort.Audit.FirstClaimNotWorked)
	assert.Equal(t, 3, result.Cohort.Audit.TotalExcluded)
}

func TestBuildDataset_InvalidInput(t *testing.T) {
	_, err := BuildDataset(strings.NewReader("WORKPLACE_ID\nw1\n"), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ingest")
}

func TestClaimSummary_PartitionIsExhaustive(t *testing.T) {
	result := buildSample(t)

	summary := ClaimSummary(result, zap.NewNop())

	assert.Equal(t, 5, summary.TotalShifts)
	assert.Equal(t, 3, summary.ClaimedShifts)
	assert.Equal(t, 2, summary.NeverClaimed)
	assert.Equal(t, 2, summary.FirstClaimsWorked)
	assert.Equal(t, 1, summary.FirstClaimsNotWorked)
	assert.Equal(t, summary.TotalShifts,
		summary.FirstClaimsWorked+summary.FirstClaimsNotWorked+summary.NeverClaimed)

	assert.InDelta(t, 40.0, summary.PctWorked, 1e-9)
	assert.InDelta(t, 20.0, summary.PctNotWorked, 1e-9)
	assert.InDelta(t, 40.0, summary.PctNeverClaimed, 1e-9)

	assert.Equal(t, 2, summary.CleanTotalShifts)
	assert.Equal(t, 1, summary.CleanNeverClaimed)
}

func TestProfitSummary(t *testing.T) {
	result := buildSample(t)

	summary := ProfitSummary(result, zap.NewNop())

	// s1 realized at the latest claim rate 28: (40-28)*8 = 96.
	assert.InDelta(t, 96.0, summary.Totals.ClaimedProfit, 1e-9)
	// s3 counterfactual at max offer 33: (50-33)*10 = 170.
	assert.InDelta(t, 170.0, summary.Totals.UnclaimedProfit, 1e-9)

	// s1 has two claim rows of 8h each; s3 counts once.
	assert.InDelta(t, 16.0, summary.Hours.ClaimedHours, 1e-9)
	assert.InDelta(t, 10.0, summary.Hours.UnclaimedHours, 1e-9)

	assert.Equal(t, "2025-03-08", summary.From.Format("2006-01-02"))
	assert.Equal(t, "2025-03-11", summary.To.Format("2006-01-02"))
}

func TestDurationReport_Filter(t *testing.T) {
	result := buildSample(t)

	all := DurationReport(result, nil, zap.NewNop())
	require.Len(t, all, 2)

	only := DurationReport(result, []float64{10}, zap.NewNop())
	require.Len(t, only, 1)
	assert.Equal(t, 10.0, only[0].DurationHours)
	assert.Equal(t, 0, only[0].Claimed)
	assert.Equal(t, 1, only[0].Total)
}

func TestLatencyReport(t *testing.T) {
	result := buildSample(t)

	report := LatencyReport(result, buckets.DefaultLatencyConfig(), zap.NewNop())
	require.Len(t, report.Buckets, 30)
	require.Len(t, report.Margins, 29)
	assert.Equal(t, 50, report.Floor)

	// s1 viewed 45h and 44h before start (bucket 1); s3 viewed 47h
	// (bucket 1) and 23h (bucket 0) before start.
	assert.Equal(t, 1, report.Buckets[0].Total)
	assert.Equal(t, 2, report.Buckets[1].Total)
	assert.Equal(t, 1, report.Buckets[1].Claimed)
	assert.False(t, report.Buckets[1].Significant)
}

func TestHolidayReport_NoRulesConfigured(t *testing.T) {
	result := buildSample(t)

	_, err := HolidayReport(result, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestHolidayReport_SplitsShifts(t *testing.T) {
	result := buildSample(t)

	// March 10 is a holiday under this rule; s1 starts then.
	stats, err := HolidayReport(result, []string{"FREQ=YEARLY;BYMONTH=3;BYMONTHDAY=10"}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.True(t, stats[0].Holiday)
	assert.Equal(t, 1, stats[0].Shifts)
	assert.Equal(t, 1, stats[0].ClaimedShifts)
	assert.Equal(t, 1, stats[1].Shifts)
	assert.Equal(t, 0, stats[1].ClaimedShifts)
}
