package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// ByLatencyCmd creates the byLatency command
func ByLatencyCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "byLatency",
		Short: "Show claim rates and margins by hours between first view and shift start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			margins, _ := cmd.Flags().GetBool("margins")

			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			report := services.LatencyReport(result, app.LatencyConfig(), app.Logger)

			fmt.Printf("\nClaim Rate by View-to-Start Latency\n")
			fmt.Printf("(buckets with fewer than %d shifts are marked *)\n\n", report.Floor)
			fmt.Printf("%12s | %8s | %8s | %10s\n", "Hours Before", "Total", "Claimed", "% Claimed")
			fmt.Println("------------------------------------------------")
			for _, b := range report.Buckets {
				marker := " "
				if !b.Significant {
					marker = "*"
				}
				fmt.Printf("%5d - %-4d | %8d | %8d | %8.1f%% %s\n",
					b.LowHours, b.HighHours, b.Total, b.Claimed, b.PctClaimed, marker)
			}
			fmt.Println()

			if margins {
				fmt.Printf("Average Margin by Days Before Shift Start ($/hr)\n\n")
				fmt.Printf("%5s | %12s | %12s\n", "Day", "Claimed", "Unclaimed")
				fmt.Println("------------------------------------")
				for _, m := range report.Margins {
					fmt.Printf("%5d | %12.2f | %12.2f\n",
						m.Day, m.ClaimedAvgMargin, m.UnclaimedAvgMargin)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Bool("margins", false, "Also show average margin per hour by day before start")

	return cmd
}
