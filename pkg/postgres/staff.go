package postgres

import (
	"context"
	"fmt"

	"github.com/denizocal/dutyroster/pkg/db"
)

// GetStaff retrieves all staff directory records, ordered by name.
func (d *DB) GetStaff(ctx context.Context) ([]db.Staff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT name, region, level, availability_note, preferred_slots, status,
		       weekday_shifts, weekend_shifts, rotation_count,
		       to_char(last_extra_shift_date, 'YYYY-MM-DD'),
		       to_char(last_weekend_shift_date, 'YYYY-MM-DD')
		FROM staff
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []db.Staff
	for rows.Next() {
		var s db.Staff
		var lastExtra, lastWeekend *string
		if err := rows.Scan(&s.Name, &s.Region, &s.Level, &s.AvailabilityNote, &s.PreferredSlots,
			&s.Status, &s.WeekdayShifts, &s.WeekendShifts, &s.RotationCount,
			&lastExtra, &lastWeekend); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		if lastExtra != nil {
			s.LastExtraShiftDate = *lastExtra
		}
		if lastWeekend != nil {
			s.LastWeekendShiftDate = *lastWeekend
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// ResetRotationCounters zeroes every staff member's rotation count,
// starting a new fairness cycle.
func (d *DB) ResetRotationCounters(ctx context.Context) error {
	if _, err := d.pool.Exec(ctx, `UPDATE staff SET rotation_count = 0`); err != nil {
		return fmt.Errorf("failed to reset rotation counters: %w", err)
	}
	return nil
}
