package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jdcarver/shift-analytics/pkg/core/model"
)

// Canonical column names of the offer-event snapshot.
const (
	ColShiftID       = "SHIFT_ID"
	ColWorkplaceID   = "WORKPLACE_ID"
	ColPayRate       = "PAY_RATE"
	ColChargeRate    = "CHARGE_RATE"
	ColDuration      = "DURATION"
	ColShiftStartAt  = "SHIFT_START_AT"
	ColShiftEndAt    = "SHIFT_END_AT"
	ColOfferViewedAt = "OFFER_VIEWED_AT"
	ColClaimedAt     = "CLAIMED_AT"
	ColCanceledAt    = "CANCELED_AT"
	ColIsVerified    = "IS_VERIFIED"
	ColIsNCNS        = "IS_NCNS"
	ColClaimed       = "CLAIMED"
)

// timestampLayouts are tried in order when coercing timestamp cells.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ReadCSV reads a raw offer-event snapshot from r and normalizes it.
// The first record is the header row.
func ReadCSV(r io.Reader) (*model.EventTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty input: no header row")
	}

	return Normalize(records[0], records[1:])
}

// Normalize turns raw tabular rows into typed offer events.
//
// Column names are trimmed of surrounding whitespace before mapping.
// Timestamp and numeric cells that fail to parse become nil rather than an
// error - dirty values degrade to "missing" and never abort the pipeline.
// The optional IS_VERIFIED / IS_NCNS columns are tracked tri-state: an
// absent column is recorded on the table itself, distinct from a present
// column with null cells. No filtering happens here.
func Normalize(header []string, rows [][]string) (*model.EventTable, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	if _, ok := cols[ColShiftID]; !ok {
		return nil, fmt.Errorf("missing required column %s", ColShiftID)
	}

	_, hasVerified := cols[ColIsVerified]
	_, hasNCNS := cols[ColIsNCNS]

	events := make([]model.OfferEvent, 0, len(rows))
	for _, row := range rows {
		ev := model.OfferEvent{
			ShiftID:       cell(row, cols, ColShiftID),
			WorkplaceID:   cell(row, cols, ColWorkplaceID),
			PayRate:       parseFloat(cell(row, cols, ColPayRate)),
			ChargeRate:    parseFloat(cell(row, cols, ColChargeRate)),
			DurationHours: parseFloat(cell(row, cols, ColDuration)),
			ShiftStartAt:  parseTime(cell(row, cols, ColShiftStartAt)),
			OfferViewedAt: parseTime(cell(row, cols, ColOfferViewedAt)),
			ClaimedAt:     parseTime(cell(row, cols, ColClaimedAt)),
			CanceledAt:    parseTime(cell(row, cols, ColCanceledAt)),
		}
		if hasVerified {
			ev.IsVerified = parseBool(cell(row, cols, ColIsVerified))
		}
		if hasNCNS {
			ev.IsNCNS = parseBool(cell(row, cols, ColIsNCNS))
		}
		if ev.ShiftID == "" {
			// A row without a shift identifier belongs to no shift and
			// cannot be grouped; treat it like any other unparsable value.
			continue
		}
		events = append(events, ev)
	}

	return &model.EventTable{
		Events:      events,
		HasVerified: hasVerified,
		HasNCNS:     hasNCNS,
	}, nil
}

// cell returns the trimmed value at the named column, or "" when the column
// is absent or the row is short.
func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseBool(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return nil
	}
	return &b
}
