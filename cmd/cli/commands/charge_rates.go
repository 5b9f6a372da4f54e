package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// ChargeRatesCmd creates the chargeRates command
func ChargeRatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chargeRates",
		Short: "Show the charge-rate distribution across unique workplaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			q, err := services.ChargeRateSummary(result, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nCharge Rate Distribution (one rate per workplace)\n\n")
			fmt.Printf("Workplaces: %d\n\n", q.Workplaces)
			fmt.Printf("  Min:    $%6.2f/hr\n", q.Min)
			fmt.Printf("  Q1:     $%6.2f/hr\n", q.Q1)
			fmt.Printf("  Median: $%6.2f/hr\n", q.Median)
			fmt.Printf("  Q3:     $%6.2f/hr\n", q.Q3)
			fmt.Printf("  Max:    $%6.2f/hr\n\n", q.Max)

			return nil
		},
	}
}
