package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/denizocal/dutyroster/pkg/core/services"
)

// PublishRosterCmd creates the publishRoster command
func PublishRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishRoster [rosterID]",
		Short: "Publish a roster to Google Sheets",
		Long:  "Publish a committed roster to Google Sheets. If no rosterID is provided, publishes the latest roster.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterID := ""
			if len(args) > 0 {
				rosterID = args[0]
			}

			app.Logger.Debug("publishRoster command", zap.String("roster_id", rosterID))

			if app.Cfg.RosterSheetID == "" {
				return fmt.Errorf("no roster sheet configured - set rosterSheetID in the config file")
			}

			sheetsClient, err := app.SheetsClient()
			if err != nil {
				return err
			}

			tab, err := services.PublishRoster(
				app.Ctx,
				app.Database,
				sheetsClient,
				app.Cfg.RosterSheetID,
				app.Logger,
				rosterID,
			)
			if err != nil {
				return fmt.Errorf("failed to publish roster: %w", err)
			}

			fmt.Printf("\n✅ Roster Published Successfully\n\n")
			fmt.Printf("Sheet ID: %s\n", app.Cfg.RosterSheetID)
			fmt.Printf("Tab:      %s\n\n", tab)

			return nil
		},
	}
}
