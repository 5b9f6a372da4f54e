package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// ByDurationCmd creates the byDuration command
func ByDurationCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "byDuration",
		Short: "Show claim rates grouped by exact shift duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			only, _ := cmd.Flags().GetString("only")

			filter, err := parseDurationFilter(only)
			if err != nil {
				return err
			}

			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			stats := services.DurationReport(result, filter, app.Logger)

			fmt.Printf("\nClaim Rate by Shift Duration\n\n")
			fmt.Printf("%10s | %8s | %11s | %8s | %10s\n",
				"Duration", "Claimed", "Not Claimed", "Total", "% Claimed")
			fmt.Println("-----------------------------------------------------------")
			for _, s := range stats {
				fmt.Printf("%8.1fh | %8d | %11d | %8d | %9.1f%%\n",
					s.DurationHours, s.Claimed, s.NotClaimed, s.Total, s.PctClaimed)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("only", "", "Comma-separated durations in hours to show (e.g. 8,9,12)")

	return cmd
}

// parseDurationFilter parses the --only flag value into duration hours.
func parseDurationFilter(only string) ([]float64, error) {
	if only == "" {
		return nil, nil
	}
	var filter []float64
	for _, part := range strings.Split(only, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", part, err)
		}
		filter = append(filter, d)
	}
	return filter, nil
}
