package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/internal/config"
)

// SheetsPublisher defines the spreadsheet operations needed to publish the
// clean cohort.
type SheetsPublisher interface {
	EnsureSheet(spreadsheetID, sheetTitle string) error
	ClearValues(spreadsheetID, sheetRange string) error
	UpdateValues(spreadsheetID, sheetRange string, values [][]interface{}) error
}

// PublishDataset replaces the contents of the configured spreadsheet tab
// with the clean cohort.
func PublishDataset(
	result *DatasetResult,
	sheets SheetsPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) (int, error) {
	if cfg.ReportSheetID == "" {
		return 0, fmt.Errorf("reportSheetID is not configured")
	}

	header, rows := DatasetRows(result.Cohort)

	logger.Debug("Publishing dataset",
		zap.String("spreadsheet_id", cfg.ReportSheetID),
		zap.String("tab", cfg.ReportSheetTab),
		zap.Int("rows", len(rows)))

	if err := sheets.EnsureSheet(cfg.ReportSheetID, cfg.ReportSheetTab); err != nil {
		return 0, fmt.Errorf("failed to ensure report tab: %w", err)
	}
	if err := sheets.ClearValues(cfg.ReportSheetID, cfg.ReportSheetTab); err != nil {
		return 0, fmt.Errorf("failed to clear report tab: %w", err)
	}

	values := make([][]interface{}, 0, len(rows)+1)
	headerRow := make([]interface{}, len(header))
	for i, name := range header {
		headerRow[i] = name
	}
	values = append(values, headerRow)
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	if err := sheets.UpdateValues(cfg.ReportSheetID, cfg.ReportSheetTab, values); err != nil {
		return 0, fmt.Errorf("failed to write dataset: %w", err)
	}

	logger.Info("Published clean cohort",
		zap.String("spreadsheet_id", cfg.ReportSheetID),
		zap.Int("rows", len(rows)))

	return len(rows), nil
}
