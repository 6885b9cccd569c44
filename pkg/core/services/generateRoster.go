package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/denizocal/dutyroster/pkg/core/model"
	"github.com/denizocal/dutyroster/pkg/core/roster"
	"github.com/denizocal/dutyroster/pkg/db"
)

// GenerateRosterResult contains the outcome of one scheduling run
type GenerateRosterResult struct {
	RosterID        string
	StartDate       time.Time
	ShiftDates      []time.Time
	Base            int
	ExtraShiftStaff []string

	Schedule *roster.TwoWeekSchedule
	Staff    []model.StaffRecord

	Warnings      []roster.Warning
	UnfilledCount int

	RotationCycleComplete bool
	Committed             bool
}

// GenerateRosterStore defines the database operations needed for a
// scheduling run
type GenerateRosterStore interface {
	GetStaff(ctx context.Context) ([]db.Staff, error)
	CommitRun(ctx context.Context, roster db.Roster, assignments []db.Assignment, staff []db.Staff) error
}

// GenerateRoster runs the scheduling engine over the staff directory and
// commits the resulting roster, assignments and updated counters in one
// transaction.
// If dryRun is true, nothing is saved to the database
// If forceCommit is true, the run is saved even when positions stayed unfilled
func GenerateRoster(
	ctx context.Context,
	database GenerateRosterStore,
	settings model.Settings,
	logger *zap.Logger,
	referenceDate time.Time,
	dryRun bool,
	forceCommit bool,
) (*GenerateRosterResult, error) {
	logger.Debug("Starting generateRoster",
		zap.String("reference_date", referenceDate.Format(isoDate)),
		zap.Bool("dry_run", dryRun),
		zap.Bool("force_commit", forceCommit))

	// Step 1: DB query - Fetch staff directory
	logger.Debug("Fetching staff")
	staffRows, err := database.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	logger.Debug("Found staff", zap.Int("count", len(staffRows)))

	records := staffFromDB(staffRows)

	// Step 2: Resolve the roster period
	startDate := rosterStartDate(referenceDate)
	shiftDates, err := rosterDates(startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate roster dates: %w", err)
	}
	logger.Debug("Roster period",
		zap.String("start", startDate.Format(isoDate)),
		zap.Int("days", len(shiftDates)))

	// Step 3: Run the scheduling engine
	logger.Info("Running scheduling engine")
	outcome, err := roster.Run(roster.RunInput{
		Staff:         records,
		Settings:      settings,
		ReferenceDate: referenceDate,
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling run failed: %w", err)
	}

	unfilled := 0
	for _, warning := range outcome.Warnings {
		if warning.Unfilled() {
			unfilled++
			logger.Warn("Position left unfilled",
				zap.Int("week", warning.Week),
				zap.String("day", string(warning.Day)),
				zap.String("slot", string(warning.Slot)),
				zap.Int("position", warning.Position))
		} else {
			logger.Warn("Position filled under relaxed rules",
				zap.Int("week", warning.Week),
				zap.String("day", string(warning.Day)),
				zap.String("slot", string(warning.Slot)),
				zap.Int("position", warning.Position),
				zap.String("stage", string(warning.Stage)),
				zap.String("staff", warning.Staff))
		}
	}

	logger.Info("Scheduling run completed",
		zap.Int("warnings", len(outcome.Warnings)),
		zap.Int("unfilled", unfilled),
		zap.Int("base", outcome.Base),
		zap.Strings("extra_shift_staff", outcome.ExtraShiftStaff),
		zap.Bool("rotation_cycle_complete", outcome.RotationCycleComplete))

	result := &GenerateRosterResult{
		RosterID:              uuid.New().String(),
		StartDate:             startDate,
		ShiftDates:            shiftDates,
		Base:                  outcome.Base,
		ExtraShiftStaff:       outcome.ExtraShiftStaff,
		Schedule:              outcome.Schedule,
		Staff:                 outcome.Staff,
		Warnings:              outcome.Warnings,
		UnfilledCount:         unfilled,
		RotationCycleComplete: outcome.RotationCycleComplete,
	}

	// Step 4: Commit the run, counters included, in one transaction
	success := unfilled == 0
	shouldSave := !dryRun && (success || forceCommit)

	if shouldSave {
		logger.Info("Saving roster to database",
			zap.String("roster_id", result.RosterID),
			zap.Bool("forced", forceCommit && !success))

		dbRoster := db.Roster{
			ID:            result.RosterID,
			StartDate:     startDate.Format(isoDate),
			ReferenceDate: referenceDate.Format(isoDate),
			Base:          outcome.Base,
		}
		assignments := buildAssignments(result.RosterID, outcome.Schedule, shiftDates)

		if err := database.CommitRun(ctx, dbRoster, assignments, staffToDB(outcome.Staff)); err != nil {
			return nil, fmt.Errorf("failed to save roster: %w", err)
		}
		result.Committed = true
		logger.Info("Roster saved", zap.Int("assignments", len(assignments)))
	} else if dryRun {
		logger.Info("Dry run mode - roster not saved")
	} else {
		logger.Warn("Roster has unfilled positions - not saving to database (use forceCommit to save anyway)")
	}

	return result, nil
}

// buildAssignments flattens the schedule grid into assignment rows, one
// per slot position, in chronological order. shiftDates must hold the
// calendar day for each grid offset.
func buildAssignments(rosterID string, schedule *roster.TwoWeekSchedule, shiftDates []time.Time) []db.Assignment {
	assignments := make([]db.Assignment, 0)

	for week := 1; week <= 2; week++ {
		weekSched := schedule.Week(week)
		for _, day := range allDays {
			shiftDate := shiftDates[(week-1)*7+dayIndex(day)]
			for _, label := range roster.SlotsFor(day) {
				slot := weekSched[day][label]
				for i, position := range slot.Positions {
					assignment := db.Assignment{
						ID:        uuid.New().String(),
						RosterID:  rosterID,
						Week:      week,
						Day:       string(day),
						SlotLabel: string(label),
						Position:  i + 1,
						ShiftDate: shiftDate.Format(isoDate),
					}
					if position == roster.PositionNotApplicable {
						assignment.NotApplicable = true
					} else if position.IsStaffed() {
						assignment.StaffName = string(position)
					}
					assignments = append(assignments, assignment)
				}
			}
		}
	}

	return assignments
}

// RunReport formats a scheduling run as an email subject and body
func RunReport(result *GenerateRosterResult) (string, string) {
	subject := fmt.Sprintf("Duty roster %s - %s",
		result.StartDate.Format("02 Jan"),
		result.StartDate.AddDate(0, 0, rosterPeriodDays-1).Format("02 Jan 2006"))

	var b strings.Builder
	fmt.Fprintf(&b, "Roster run %s\n\n", result.RosterID)
	fmt.Fprintf(&b, "Start date: %s\n", result.StartDate.Format(isoDate))
	fmt.Fprintf(&b, "Weekday base allotment: %d\n", result.Base)

	if len(result.ExtraShiftStaff) > 0 {
		fmt.Fprintf(&b, "Extra shift this run: %s\n", strings.Join(result.ExtraShiftStaff, ", "))
	}

	if result.RotationCycleComplete {
		b.WriteString("\nEvery active staff member has now completed an extra-shift rotation.\n")
	}

	if len(result.Warnings) == 0 {
		b.WriteString("\nAll positions filled under strict rules.\n")
	} else {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "  - %s\n", warning.String())
		}
	}

	if !result.Committed {
		b.WriteString("\nThis run was NOT saved to the database.\n")
	}

	return subject, b.String()
}
