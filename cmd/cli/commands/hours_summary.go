package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// HoursSummaryCmd creates the hoursSummary command
func HoursSummaryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hoursSummary",
		Short: "Show filled vs unfilled shift hour totals for the clean cohort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			hours := services.HoursSummary(result, app.Logger)
			total := hours.ClaimedHours + hours.UnclaimedHours

			fmt.Printf("\nTotal Shift Hours\n\n")
			fmt.Printf("%-12s | %12s | %10s\n", "", "Hours", "% of Total")
			fmt.Println("--------------------------------------")
			if total > 0 {
				fmt.Printf("%-12s | %12.0f | %9.1f%%\n", "Claimed", hours.ClaimedHours, hours.ClaimedHours/total*100)
				fmt.Printf("%-12s | %12.0f | %9.1f%%\n", "Unclaimed", hours.UnclaimedHours, hours.UnclaimedHours/total*100)
				fmt.Printf("%-12s | %12.0f | %9.1f%%\n", "Total", total, 100.0)
			} else {
				fmt.Println("No shift hours in the clean cohort.")
			}
			fmt.Println()

			return nil
		},
	}
}
