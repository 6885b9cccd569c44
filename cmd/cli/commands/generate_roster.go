package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/denizocal/dutyroster/pkg/core/roster"
	"github.com/denizocal/dutyroster/pkg/core/services"
)

// GenerateRosterCmd creates the generateRoster command
func GenerateRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateRoster",
		Short: "Generate a two-week duty roster",
		Long:  "Run the scheduling engine over the staff directory and commit the resulting roster, assignments and updated fairness counters in one transaction.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			forceCommit, _ := cmd.Flags().GetBool("force-commit")
			notify, _ := cmd.Flags().GetBool("notify")
			dateStr, _ := cmd.Flags().GetString("date")

			referenceDate := time.Now().UTC().Truncate(24 * time.Hour)
			if dateStr != "" {
				parsed, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD: %w", dateStr, err)
				}
				referenceDate = parsed
			}

			app.Logger.Debug("generateRoster command",
				zap.Bool("dry_run", dryRun),
				zap.Bool("force_commit", forceCommit),
				zap.String("reference_date", referenceDate.Format("2006-01-02")))

			result, err := services.GenerateRoster(
				app.Ctx,
				app.Database,
				app.Settings,
				app.Logger,
				referenceDate,
				dryRun,
				forceCommit,
			)
			if err != nil {
				return fmt.Errorf("roster generation failed: %w", err)
			}

			// Display header
			fmt.Printf("\n🗓  Roster Generation Results\n\n")
			fmt.Printf("Roster ID:   %s\n", result.RosterID)
			fmt.Printf("Start Date:  %s (Monday)\n", result.StartDate.Format("2006-01-02"))
			fmt.Printf("Base:        %d weekday shifts per person\n", result.Base)
			if len(result.ExtraShiftStaff) > 0 {
				fmt.Printf("Extra shift: %v\n", result.ExtraShiftStaff)
			}
			if dryRun {
				fmt.Printf("Mode:        🧪 DRY RUN (not saved)\n")
			} else if result.Committed && result.UnfilledCount == 0 {
				fmt.Printf("Status:      ✅ COMMITTED\n")
			} else if result.Committed {
				fmt.Printf("Status:      ⚠️  FORCED (saved with %d unfilled positions)\n", result.UnfilledCount)
			} else {
				fmt.Printf("Status:      ❌ NOT SAVED (%d unfilled positions, use --force-commit to save anyway)\n", result.UnfilledCount)
			}
			fmt.Println()

			printSchedule(result)
			printWarnings(result.Warnings)

			if result.RotationCycleComplete {
				fmt.Println("🔄 Every active staff member has completed an extra-shift rotation.")
				fmt.Println("   Run 'checkRotation --reset' to start a new cycle.")
				fmt.Println()
			}

			if notify {
				if err := sendRunReport(app, result); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().Bool("force-commit", false, "Save even when positions stayed unfilled")
	cmd.Flags().Bool("notify", false, "Email the run report to the configured recipients")
	cmd.Flags().String("date", "", "Reference date (YYYY-MM-DD, defaults to today)")

	return cmd
}

// printSchedule prints both weeks of the roster grid
func printSchedule(result *services.GenerateRosterResult) {
	days := []roster.Day{
		roster.Monday, roster.Tuesday, roster.Wednesday, roster.Thursday,
		roster.Friday, roster.Saturday, roster.Sunday,
	}

	for week := 1; week <= 2; week++ {
		fmt.Printf("📅 Week %d:\n\n", week)
		fmt.Printf("%-10s  %-12s  %-18s  %-18s\n", "Day", "Slot", "Position 1", "Position 2")
		fmt.Println("----------  ------------  ------------------  ------------------")

		weekSched := result.Schedule.Week(week)
		for _, day := range days {
			for _, label := range roster.SlotsFor(day) {
				slot := weekSched[day][label]
				fmt.Printf("%-10s  %-12s  %-18s  %-18s\n",
					day, label,
					positionCell(slot.Positions[0]),
					positionCell(slot.Positions[1]))
			}
		}
		fmt.Println()
	}
}

func positionCell(position roster.Position) string {
	switch position {
	case roster.PositionUnfilled:
		return "⚠️  UNFILLED"
	case roster.PositionNotApplicable:
		return "—"
	default:
		return string(position)
	}
}

func printWarnings(warnings []roster.Warning) {
	if len(warnings) == 0 {
		fmt.Println("✅ All positions filled under strict rules.")
		fmt.Println()
		return
	}

	fmt.Printf("⚠️  Warnings (%d):\n", len(warnings))
	for _, warning := range warnings {
		fmt.Printf("  • %s\n", warning.String())
	}
	fmt.Println()
}

// sendRunReport emails the run summary to the configured recipients
func sendRunReport(app *AppContext, result *services.GenerateRosterResult) error {
	if len(app.Cfg.ReportRecipients) == 0 {
		return fmt.Errorf("no report recipients configured - set reportRecipients in the config file")
	}

	gmailClient, err := app.GmailClient()
	if err != nil {
		return err
	}

	subject, body := services.RunReport(result)
	if err := gmailClient.SendReport(app.Cfg.ReportRecipients, subject, body); err != nil {
		return fmt.Errorf("failed to email run report: %w", err)
	}

	fmt.Printf("📧 Run report sent to %d recipients.\n\n", len(app.Cfg.ReportRecipients))
	return nil
}
