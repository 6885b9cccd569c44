package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ListStaffCmd creates the listStaff command
func ListStaffCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listStaff",
		Short: "List all staff with their fairness counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listStaff command")

			staff, err := app.Database.GetStaff(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list staff: %w", err)
			}

			app.Logger.Info("Staff fetched successfully", zap.Int("count", len(staff)))

			fmt.Printf("\nFound %d staff:\n\n", len(staff))
			fmt.Printf("%-20s  %-10s  %-10s  %-10s  %8s  %8s  %9s\n",
				"Name", "Region", "Level", "Status", "Weekday", "Weekend", "Rotations")
			fmt.Println("--------------------  ----------  ----------  ----------  --------  --------  ---------")

			for _, s := range staff {
				fmt.Printf("%-20s  %-10s  %-10s  %-10s  %8d  %8d  %9d\n",
					s.Name, s.Region, s.Level, s.Status,
					s.WeekdayShifts, s.WeekendShifts, s.RotationCount)
				if s.AvailabilityNote != "" {
					fmt.Printf("    ↳ availability: %s\n", s.AvailabilityNote)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
