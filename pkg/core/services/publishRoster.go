package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/denizocal/dutyroster/pkg/clients/sheetsclient"
	"github.com/denizocal/dutyroster/pkg/core/roster"
	"github.com/denizocal/dutyroster/pkg/db"
)

// PublishRosterStore defines the database operations needed for
// publishing a roster
type PublishRosterStore interface {
	GetRosters(ctx context.Context) ([]db.Roster, error)
	GetAssignments(ctx context.Context, rosterID string) ([]db.Assignment, error)
}

// RosterPublisher writes a formatted roster grid to a spreadsheet tab
// and returns the tab title
type RosterPublisher interface {
	PublishRoster(spreadsheetID string, roster sheetsclient.PublishedRoster) (string, error)
}

// PublishRoster formats a committed roster and writes it to Google
// Sheets. If rosterID is empty, the latest roster is published.
// Returns the spreadsheet tab the roster landed on.
func PublishRoster(
	ctx context.Context,
	database PublishRosterStore,
	publisher RosterPublisher,
	spreadsheetID string,
	logger *zap.Logger,
	rosterID string,
) (string, error) {
	logger.Debug("Starting publishRoster", zap.String("roster_id", rosterID))

	published, err := BuildPublishedRoster(ctx, database, logger, rosterID)
	if err != nil {
		return "", err
	}

	logger.Info("Publishing roster to Google Sheets",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.Int("rows", len(published.Rows)))

	tab, err := publisher.PublishRoster(spreadsheetID, *published)
	if err != nil {
		return "", fmt.Errorf("failed to publish roster: %w", err)
	}

	logger.Info("Roster published", zap.String("tab", tab))
	return tab, nil
}

// BuildPublishedRoster fetches a committed roster and flattens it into
// the grid the spreadsheet shows: one row per slot, in chronological
// order, staffed names alongside the unfilled and not-applicable markers
func BuildPublishedRoster(
	ctx context.Context,
	database PublishRosterStore,
	logger *zap.Logger,
	rosterID string,
) (*sheetsclient.PublishedRoster, error) {
	// Step 1: Resolve the target roster
	logger.Debug("Fetching rosters")
	rosters, err := database.GetRosters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rosters: %w", err)
	}

	if len(rosters) == 0 {
		return nil, fmt.Errorf("no rosters found - please generate a roster first")
	}

	var target *db.Roster
	if rosterID == "" {
		target = findLatestRoster(rosters)
		logger.Debug("No roster ID provided, using latest roster", zap.String("id", target.ID))
	} else {
		for i := range rosters {
			if rosters[i].ID == rosterID {
				target = &rosters[i]
				break
			}
		}
		if target == nil {
			return nil, fmt.Errorf("roster not found: %s", rosterID)
		}
	}

	startDate, err := time.Parse(isoDate, target.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid roster start date %q: %w", target.StartDate, err)
	}

	// Step 2: Fetch the roster's assignments
	logger.Debug("Fetching assignments", zap.String("roster_id", target.ID))
	assignments, err := database.GetAssignments(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	logger.Debug("Found assignments", zap.Int("count", len(assignments)))

	// Index cells by grid coordinate so row order does not depend on the
	// order the store returned them in
	type cellKey struct {
		week     int
		day      string
		slot     string
		position int
	}
	cells := make(map[cellKey]db.Assignment, len(assignments))
	for _, assignment := range assignments {
		cells[cellKey{assignment.Week, assignment.Day, assignment.SlotLabel, assignment.Position}] = assignment
	}

	// Step 3: Walk the grid chronologically and build the rows
	rows := make([]sheetsclient.PublishedRosterRow, 0)

	for week := 1; week <= 2; week++ {
		for _, day := range allDays {
			date := startDate.AddDate(0, 0, (week-1)*7+dayIndex(day))
			for _, label := range roster.SlotsFor(day) {
				row := sheetsclient.PublishedRosterRow{
					Date: date,
					Day:  string(day),
					Slot: string(label),
				}

				for position := 1; ; position++ {
					cell, ok := cells[cellKey{week, string(day), string(label), position}]
					if !ok {
						break
					}
					switch {
					case cell.NotApplicable:
						row.Staff = append(row.Staff, "N/A")
					case cell.StaffName == "":
						row.Staff = append(row.Staff, "")
					default:
						row.Staff = append(row.Staff, cell.StaffName)
					}
				}

				rows = append(rows, row)
			}
		}
	}

	logger.Info("Published roster built",
		zap.String("roster_id", target.ID),
		zap.Int("rows", len(rows)))

	return &sheetsclient.PublishedRoster{
		StartDate: startDate,
		Rows:      rows,
	}, nil
}
