package postgres

import (
	"context"
	"fmt"

	"github.com/denizocal/dutyroster/pkg/db"
)

// GetRosters retrieves all committed rosters, most recent first.
func (d *DB) GetRosters(ctx context.Context) ([]db.Roster, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, to_char(start_date, 'YYYY-MM-DD'), to_char(reference_date, 'YYYY-MM-DD'), base
		FROM roster
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters: %w", err)
	}
	defer rows.Close()

	var rosters []db.Roster
	for rows.Next() {
		var r db.Roster
		if err := rows.Scan(&r.ID, &r.StartDate, &r.ReferenceDate, &r.Base); err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rosters: %w", err)
	}

	return rosters, nil
}

// GetAssignments retrieves all assignment rows of a roster in grid
// order (week, day of insertion, slot, position).
func (d *DB) GetAssignments(ctx context.Context, rosterID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, roster_id, week, day, slot_label, position,
		       to_char(shift_date, 'YYYY-MM-DD'), staff_name, not_applicable
		FROM assignment
		WHERE roster_id = $1
		ORDER BY week, shift_date, slot_label, position
	`, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var staffName *string
		if err := rows.Scan(&a.ID, &a.RosterID, &a.Week, &a.Day, &a.SlotLabel,
			&a.Position, &a.ShiftDate, &staffName, &a.NotApplicable); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if staffName != nil {
			a.StaffName = *staffName
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// CommitRun persists a scheduling run atomically: the roster record,
// every assignment row, and the updated staff counters commit in one
// transaction or not at all.
func (d *DB) CommitRun(ctx context.Context, roster db.Roster, assignments []db.Assignment, staff []db.Staff) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO roster (id, start_date, reference_date, base)
		VALUES ($1, $2, $3, $4)
	`, roster.ID, roster.StartDate, roster.ReferenceDate, roster.Base)
	if err != nil {
		return fmt.Errorf("failed to insert roster: %w", err)
	}

	for _, a := range assignments {
		var staffName *string
		if a.StaffName != "" {
			staffName = &a.StaffName
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, roster_id, week, day, slot_label, position, shift_date, staff_name, not_applicable)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, a.ID, a.RosterID, a.Week, a.Day, a.SlotLabel, a.Position, a.ShiftDate, staffName, a.NotApplicable)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	for _, s := range staff {
		var lastExtra, lastWeekend *string
		if s.LastExtraShiftDate != "" {
			lastExtra = &s.LastExtraShiftDate
		}
		if s.LastWeekendShiftDate != "" {
			lastWeekend = &s.LastWeekendShiftDate
		}

		_, err := tx.Exec(ctx, `
			UPDATE staff
			SET weekday_shifts = $2, weekend_shifts = $3, rotation_count = $4,
			    last_extra_shift_date = $5, last_weekend_shift_date = $6
			WHERE name = $1
		`, s.Name, s.WeekdayShifts, s.WeekendShifts, s.RotationCount, lastExtra, lastWeekend)
		if err != nil {
			return fmt.Errorf("failed to update staff counters for %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
