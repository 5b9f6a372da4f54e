package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// ProfitSummaryCmd creates the profitSummary command
func ProfitSummaryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "profitSummary",
		Short: "Show realized vs counterfactual profit and hour totals for the clean cohort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			summary := services.ProfitSummary(result, app.Logger)

			fmt.Printf("\nEstimated Profit: Claimed vs. Unclaimed Shifts\n")
			if !summary.From.IsZero() {
				fmt.Printf("Based on shift data from %s to %s\n",
					summary.From.Format("2006-01-02"), summary.To.Format("2006-01-02"))
			}
			fmt.Println()
			fmt.Printf("Profits collected (claimed):            $%.0f\n", summary.Totals.ClaimedProfit)
			fmt.Printf("Potential profits lost (unclaimed):     $%.0f  [counterfactual, at highest offer]\n\n", summary.Totals.UnclaimedProfit)

			total := summary.Hours.ClaimedHours + summary.Hours.UnclaimedHours
			fmt.Printf("Total Shift Hours\n")
			fmt.Printf("%-12s | %12s | %10s\n", "", "Hours", "% of Total")
			fmt.Println("--------------------------------------")
			if total > 0 {
				fmt.Printf("%-12s | %12.0f | %9.1f%%\n", "Claimed", summary.Hours.ClaimedHours, summary.Hours.ClaimedHours/total*100)
				fmt.Printf("%-12s | %12.0f | %9.1f%%\n", "Unclaimed", summary.Hours.UnclaimedHours, summary.Hours.UnclaimedHours/total*100)
				fmt.Printf("%-12s | %12.0f | %9.1f%%\n", "Total", total, 100.0)
			}
			fmt.Println()

			return nil
		},
	}
}
