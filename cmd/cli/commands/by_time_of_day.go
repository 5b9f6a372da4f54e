package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// ByTimeOfDayCmd creates the byTimeOfDay command
func ByTimeOfDayCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "byTimeOfDay",
		Short: "Show per-shift margins on a fractional hour-of-day axis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			spans := services.TimeOfDayReport(result, app.Logger)

			fmt.Printf("\nProfit Margin by Time of Day\n")
			fmt.Printf("(end hour beyond 24 means the shift runs past midnight)\n\n")
			fmt.Printf("%-14s | %-14s | %9s | %8s | %8s | %9s\n",
				"Shift", "Workplace", "Claimed", "Start", "End", "Margin %")
			fmt.Println("---------------------------------------------------------------------------")
			for _, s := range spans {
				claimed := "no"
				if s.Claimed {
					claimed = "yes"
				}
				fmt.Printf("%-14s | %-14s | %9s | %8.2f | %8.2f | %8.1f%%\n",
					s.ShiftID, s.WorkplaceID, claimed, s.StartHour, s.EndHour, s.ProfitMarginPct)
			}
			fmt.Println()

			return nil
		},
	}
}
