package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/postgres"
)

// ListRunsCmd creates the listRuns command
func ListRunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRuns",
		Short: "List stored analysis runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cfg.DatabaseURL == "" {
				return fmt.Errorf("databaseURL is not configured")
			}

			database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			runs, err := database.GetAnalysisRuns(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list analysis runs: %w", err)
			}

			if len(runs) == 0 {
				fmt.Println("\nNo analysis runs stored yet.")
				return nil
			}

			fmt.Printf("\nFound %d analysis runs:\n\n", len(runs))
			for _, r := range runs {
				fmt.Printf("- %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"))
				fmt.Printf("    source:   %s\n", r.Source)
				fmt.Printf("    shifts:   %d total, %d claimed, %d clean (%d excluded)\n",
					r.TotalShifts, r.ClaimedShifts, r.CleanShifts, r.ExcludedTotal)
				fmt.Printf("    profit:   $%.0f claimed, $%.0f unclaimed counterfactual\n",
					r.ClaimedProfit, r.UnclaimedProfit)
			}
			fmt.Println()

			return nil
		},
	}
}
