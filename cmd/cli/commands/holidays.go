package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// HolidaysCmd creates the holidays command
func HolidaysCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "holidays",
		Short: "Compare claim behavior and margins on holiday shift starts vs other days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			stats, err := services.HolidayReport(result, app.Cfg.HolidayRules, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nHoliday vs. Non-Holiday Shift Starts\n\n")
			fmt.Printf("%-12s | %8s | %8s | %10s | %12s\n",
				"", "Shifts", "Claimed", "% Claimed", "Avg Margin")
			fmt.Println("------------------------------------------------------------")
			for _, s := range stats {
				label := "Other days"
				if s.Holiday {
					label = "Holidays"
				}
				fmt.Printf("%-12s | %8d | %8d | %9.1f%% | %11.1f%%\n",
					label, s.Shifts, s.ClaimedShifts, s.PctShiftsClaimed, s.AvgMarginPct)
			}
			fmt.Println()

			return nil
		},
	}
}
