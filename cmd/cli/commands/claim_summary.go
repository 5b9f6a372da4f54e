package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// ClaimSummaryCmd creates the claimSummary command
func ClaimSummaryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "claimSummary",
		Short: "Show claim outcome counts for the full dataset and the clean cohort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			summary := services.ClaimSummary(result, app.Logger)

			fmt.Printf("\nClaim Summary\n\n")
			fmt.Printf("Total unique shifts:                    %d\n", summary.TotalShifts)
			fmt.Printf("Shifts with at least one claimer:       %d\n", summary.ClaimedShifts)
			fmt.Printf("Shifts with first claimer who worked:   %d\n", summary.FirstClaimsWorked)
			fmt.Printf("Shifts with first claimer not working:  %d\n", summary.FirstClaimsNotWorked)
			fmt.Printf("Shifts never claimed:                   %d\n\n", summary.NeverClaimed)

			fmt.Printf("Percentage worked:        %.2f%%\n", summary.PctWorked)
			fmt.Printf("Percentage not worked:    %.2f%%\n", summary.PctNotWorked)
			fmt.Printf("Percentage never claimed: %.2f%%\n\n", summary.PctNeverClaimed)

			fmt.Printf("Clean cohort\n")
			fmt.Printf("  Shifts:                    %d\n", summary.CleanTotalShifts)
			fmt.Printf("  Never claimed:             %d\n", summary.CleanNeverClaimed)
			fmt.Printf("  Excluded (total):          %d\n", summary.Audit.TotalExcluded)
			fmt.Printf("    canceled:                %d\n", summary.Audit.Canceled)
			fmt.Printf("    no-call-no-show:         %d\n", summary.Audit.NoCallNoShow)
			fmt.Printf("    first claim not worked:  %d\n", summary.Audit.FirstClaimNotWorked)
			fmt.Println()

			return nil
		},
	}
}
