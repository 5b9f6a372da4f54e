package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jdcarver/shift-analytics/cmd/cli/commands"
	"github.com/jdcarver/shift-analytics/internal/config"
	"github.com/jdcarver/shift-analytics/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Shift Analytics CLI - Analyze shift offer and claim data",
		Long:  `A CLI tool for turning raw shift-offer event logs into claim, profit, and bucketed reports over a clean analytic cohort.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logging on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	// Commands capture the AppContext pointer; initApp fills its fields
	// before any RunE fires.
	app = &commands.AppContext{}

	// Add all commands
	rootCmd.AddCommand(commands.ClaimSummaryCmd(app))
	rootCmd.AddCommand(commands.ProfitSummaryCmd(app))
	rootCmd.AddCommand(commands.HoursSummaryCmd(app))
	rootCmd.AddCommand(commands.ChargeRatesCmd(app))
	rootCmd.AddCommand(commands.RateSplitCmd(app))
	rootCmd.AddCommand(commands.ByDurationCmd(app))
	rootCmd.AddCommand(commands.ByLatencyCmd(app))
	rootCmd.AddCommand(commands.ByTimeOfDayCmd(app))
	rootCmd.AddCommand(commands.HolidaysCmd(app))
	rootCmd.AddCommand(commands.ExportDatasetCmd(app))
	rootCmd.AddCommand(commands.PublishDatasetCmd(app))
	rootCmd.AddCommand(commands.StoreReportCmd(app))
	rootCmd.AddCommand(commands.ListRunsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger and config
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.Env = env

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("dataset_path", app.Cfg.DatasetPath))

	return nil
}
