package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// RateSplitCmd creates the rateSplit command
func RateSplitCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rateSplit",
		Short: "Split shifts by whether pay rate sits below or at/above charge rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			split := services.RateSplitSummary(result, app.Logger)

			fmt.Printf("\nPay Rate vs. Charge Rate\n")
			fmt.Printf("(claimed shifts use the realized claim rate; unclaimed use the highest offer)\n\n")
			fmt.Printf("%-12s | %12s | %12s\n", "", "Below", "At/Above")
			fmt.Println("------------------------------------------")
			fmt.Printf("%-12s | %12d | %12d\n", "Claimed", split.ClaimedBelow, split.ClaimedAtAbove)
			fmt.Printf("%-12s | %12d | %12d\n", "Unclaimed", split.UnclaimedBelow, split.UnclaimedAtAbove)
			fmt.Println()

			return nil
		},
	}
}
