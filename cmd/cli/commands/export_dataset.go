package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// ExportDatasetCmd creates the exportDataset command
func ExportDatasetCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportDataset",
		Short: "Write the clean cohort to a CSV file (or stdout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			if out == "" {
				return services.ExportDataset(result, os.Stdout, app.Logger)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			if err := services.ExportDataset(result, f, app.Logger); err != nil {
				return err
			}

			fmt.Printf("\nClean cohort written to %s (%d shifts, %d rows)\n\n",
				out, result.Cohort.Resolution.TotalShifts(), len(result.Cohort.Table.Events))

			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Output file path (default: stdout)")

	return cmd
}
