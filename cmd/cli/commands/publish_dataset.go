package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdcarver/shift-analytics/internal/config"
	"github.com/jdcarver/shift-analytics/pkg/clients/sheetsclient"
	"github.com/jdcarver/shift-analytics/pkg/core/services"
)

// PublishDatasetCmd creates the publishDataset command. The sheets client is
// constructed here rather than at startup so offline reports never trigger
// the OAuth flow.
func PublishDatasetCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishDataset",
		Short: "Replace the configured spreadsheet tab with the clean cohort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.LoadDataset()
			if err != nil {
				return err
			}

			oauthCfg, err := config.LoadOAuthClient()
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			sheets, err := sheetsclient.NewClient(app.Ctx, oauthCfg)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			rows, err := services.PublishDataset(result, sheets, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nPublished %d rows to spreadsheet %s (tab %q)\n\n",
				rows, app.Cfg.ReportSheetID, app.Cfg.ReportSheetTab)

			return nil
		},
	}
}
