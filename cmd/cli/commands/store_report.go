package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
	"github.com/jdcarver/shift-analytics/pkg/postgres"
)

// StoreReportCmd creates the storeReport command. The database connection is
// opened here rather than at startup so offline reports work without
// Postgres.
func StoreReportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "storeReport",
		Short: "Persist the current analysis run to Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cfg.DatabaseURL == "" {
				return fmt.Errorf("databaseURL is not configured")
			}

			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			if err := database.RunMigrations(app.Ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			runID, err := services.StoreReport(app.Ctx, database, result, app.Cfg.DatasetPath, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nAnalysis run stored successfully!\n\n")
			fmt.Printf("Run ID: %s\n\n", runID)

			return nil
		},
	}
}
