package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/denizocal/dutyroster/pkg/core/model"
	"github.com/denizocal/dutyroster/pkg/core/roster"
	"github.com/denizocal/dutyroster/pkg/db"
)

const isoDate = "2006-01-02"

// rosterPeriodDays is the number of calendar days one roster covers
const rosterPeriodDays = 14

// allDays is the chronological day order of one roster week
var allDays = []roster.Day{
	roster.Monday, roster.Tuesday, roster.Wednesday, roster.Thursday,
	roster.Friday, roster.Saturday, roster.Sunday,
}

// rosterStartDate returns the Monday the roster period begins on: the
// reference date itself when it falls on a Monday, otherwise the next one
func rosterStartDate(referenceDate time.Time) time.Time {
	date := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), 0, 0, 0, 0, time.UTC)
	for date.Weekday() != time.Monday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// rosterDates expands the start Monday into the consecutive calendar
// days the two-week grid covers
func rosterDates(start time.Time) ([]time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Count:   rosterPeriodDays,
		Dtstart: start,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build roster date rule: %w", err)
	}
	return rule.All(), nil
}

// dayIndex returns the chronological position of a day within its week
func dayIndex(day roster.Day) int {
	for i, d := range allDays {
		if d == day {
			return i
		}
	}
	return 0
}

// staffFromDB converts database staff rows to scheduling records
func staffFromDB(rows []db.Staff) []model.StaffRecord {
	records := make([]model.StaffRecord, len(rows))
	for i, row := range rows {
		records[i] = model.StaffRecord{
			Name:                 row.Name,
			Region:               row.Region,
			Level:                row.Level,
			AvailabilityNote:     row.AvailabilityNote,
			PreferredSlots:       row.PreferredSlots,
			Status:               row.Status,
			WeekdayShifts:        row.WeekdayShifts,
			WeekendShifts:        row.WeekendShifts,
			RotationCount:        row.RotationCount,
			LastExtraShiftDate:   row.LastExtraShiftDate,
			LastWeekendShiftDate: row.LastWeekendShiftDate,
		}
	}
	return records
}

// staffToDB converts scheduling records back to database staff rows
func staffToDB(records []model.StaffRecord) []db.Staff {
	rows := make([]db.Staff, len(records))
	for i, record := range records {
		rows[i] = db.Staff{
			Name:                 record.Name,
			Region:               record.Region,
			Level:                record.Level,
			AvailabilityNote:     record.AvailabilityNote,
			PreferredSlots:       record.PreferredSlots,
			Status:               record.Status,
			WeekdayShifts:        record.WeekdayShifts,
			WeekendShifts:        record.WeekendShifts,
			RotationCount:        record.RotationCount,
			LastExtraShiftDate:   record.LastExtraShiftDate,
			LastWeekendShiftDate: record.LastWeekendShiftDate,
		}
	}
	return rows
}

// findLatestRoster finds the roster with the most recent start date
func findLatestRoster(rosters []db.Roster) *db.Roster {
	if len(rosters) == 0 {
		return nil
	}

	latest := &rosters[0]
	latestDate, err := time.Parse(isoDate, latest.StartDate)
	if err != nil {
		return latest
	}

	for i := 1; i < len(rosters); i++ {
		currentDate, err := time.Parse(isoDate, rosters[i].StartDate)
		if err != nil {
			continue
		}

		if currentDate.After(latestDate) {
			latest = &rosters[i]
			latestDate = currentDate
		}
	}

	return latest
}
