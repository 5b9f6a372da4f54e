package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/pkg/core/economics"
	"github.com/jdcarver/shift-analytics/pkg/core/ingest"
	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// exportColumns is the canonical output column order: the ingestion columns
// with SHIFT_END_AT immediately after SHIFT_START_AT and CLAIMED appended.
// Columns dropped by the exclusion filter are omitted at render time.
var exportColumns = []string{
	ingest.ColShiftID,
	ingest.ColWorkplaceID,
	ingest.ColPayRate,
	ingest.ColChargeRate,
	ingest.ColDuration,
	ingest.ColShiftStartAt,
	ingest.ColShiftEndAt,
	ingest.ColOfferViewedAt,
	ingest.ColClaimedAt,
	ingest.ColCanceledAt,
	ingest.ColClaimed,
}

// DatasetRows renders the clean cohort as tabular rows for the reporting
// sinks. CLAIMED carries the shift-level claimed flag on every row of the
// shift, per the resolution - it is never set independently of claimed_at.
func DatasetRows(c *model.Cohort) ([]string, [][]string) {
	dropped := make(map[string]bool, len(c.DroppedColumns))
	for _, name := range c.DroppedColumns {
		dropped[name] = true
	}

	header := make([]string, 0, len(exportColumns))
	for _, name := range exportColumns {
		if !dropped[name] {
			header = append(header, name)
		}
	}

	rows := make([][]string, 0, len(c.Table.Events))
	for i := range c.Table.Events {
		ev := &c.Table.Events[i]
		outcome := c.Resolution.Outcomes[ev.ShiftID]

		row := make([]string, 0, len(header))
		for _, name := range header {
			row = append(row, renderCell(ev, outcome, name))
		}
		rows = append(rows, row)
	}

	return header, rows
}

func renderCell(ev *model.OfferEvent, outcome *model.ShiftOutcome, column string) string {
	switch column {
	case ingest.ColShiftID:
		return ev.ShiftID
	case ingest.ColWorkplaceID:
		return ev.WorkplaceID
	case ingest.ColPayRate:
		return renderFloat(ev.PayRate)
	case ingest.ColChargeRate:
		return renderFloat(ev.ChargeRate)
	case ingest.ColDuration:
		return renderFloat(ev.DurationHours)
	case ingest.ColShiftStartAt:
		return renderTime(ev.ShiftStartAt)
	case ingest.ColShiftEndAt:
		if ev.ShiftStartAt == nil || ev.DurationHours == nil {
			return ""
		}
		end := economics.ShiftEnd(*ev.ShiftStartAt, *ev.DurationHours)
		return end.Format(exportTimeLayout)
	case ingest.ColOfferViewedAt:
		return renderTime(ev.OfferViewedAt)
	case ingest.ColClaimedAt:
		return renderTime(ev.ClaimedAt)
	case ingest.ColCanceledAt:
		return renderTime(ev.CanceledAt)
	case ingest.ColClaimed:
		return strconv.FormatBool(outcome.Claimed)
	}
	return ""
}

func renderFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func renderTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportTimeLayout)
}

// ExportDataset writes the clean cohort as CSV to w.
func ExportDataset(result *DatasetResult, w io.Writer, logger *zap.Logger) error {
	header, rows := DatasetRows(result.Cohort)

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	logger.Info("Exported clean cohort",
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(header)))

	return nil
}
