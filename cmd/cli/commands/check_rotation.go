package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/denizocal/dutyroster/pkg/core/services"
)

// CheckRotationCmd creates the checkRotation command
func CheckRotationCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkRotation",
		Short: "Check whether the extra-shift rotation cycle is complete",
		Long:  "Report whether every active staff member has completed at least one extra-shift rotation. With --reset, zero the rotation counters to begin a new cycle.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reset, _ := cmd.Flags().GetBool("reset")
			force, _ := cmd.Flags().GetBool("force")

			app.Logger.Debug("checkRotation command",
				zap.Bool("reset", reset),
				zap.Bool("force", force))

			status, err := services.CheckRotation(app.Ctx, app.Database, app.Settings.OnLeaveStatus, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n🔄 Rotation Cycle Status\n\n")
			fmt.Printf("Active staff: %d\n", status.ActiveCount)
			if status.Complete {
				fmt.Printf("Status:       ✅ COMPLETE - everyone has taken an extra shift\n")
			} else {
				fmt.Printf("Status:       ⏳ IN PROGRESS (%d staff pending)\n", len(status.Pending))
				for _, name := range status.Pending {
					fmt.Printf("  • %s\n", name)
				}
			}
			fmt.Println()

			if !reset {
				return nil
			}

			if !status.Complete && !force {
				fmt.Println("Cycle is not complete - refusing to reset (use --force to reset anyway).")
				return nil
			}

			if err := services.ResetRotation(app.Ctx, app.Database, app.Logger); err != nil {
				return err
			}

			fmt.Println("✅ Rotation counters reset. A new cycle begins with the next roster.")
			return nil
		},
	}

	cmd.Flags().Bool("reset", false, "Zero the rotation counters to begin a new cycle")
	cmd.Flags().Bool("force", false, "Reset even when the cycle is incomplete")

	return cmd
}
