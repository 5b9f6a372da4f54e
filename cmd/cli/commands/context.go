package commands

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/internal/config"
	"github.com/jdcarver/shift-analytics/pkg/core/buckets"
	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// AppContext holds the application dependencies shared by all commands.
type AppContext struct {
	Ctx    context.Context
	Cfg    *config.Config
	Logger *zap.Logger
	Env    string
}

// LoadDataset reads the configured snapshot and runs the pipeline. Every
// command goes through here so the claim and exclusion semantics are
// identical across all reports.
func (app *AppContext) LoadDataset() (*services.DatasetResult, error) {
	app.Logger.Debug("Loading dataset", zap.String("path", app.Cfg.DatasetPath))

	f, err := os.Open(app.Cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", app.Cfg.DatasetPath, err)
	}
	defer f.Close()

	return services.BuildDataset(f, app.Logger)
}

// LatencyConfig resolves the latency bucketing knobs, applying config
// overrides on top of the defaults.
func (app *AppContext) LatencyConfig() buckets.LatencyConfig {
	cfg := buckets.DefaultLatencyConfig()
	if app.Cfg.Latency.WindowHours > 0 {
		cfg.WindowHours = app.Cfg.Latency.WindowHours
	}
	if app.Cfg.Latency.BucketHours > 0 {
		cfg.BucketHours = app.Cfg.Latency.BucketHours
	}
	if app.Cfg.Latency.SignificantTotal > 0 {
		cfg.SignificantTotal = app.Cfg.Latency.SignificantTotal
	}
	return cfg
}
