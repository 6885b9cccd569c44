package model

import "strings"

// StaffRecord represents a member of staff in the duty roster directory.
// Records are keyed by Name, which is unique within the directory.
type StaffRecord struct {
	Name             string
	Region           string
	Level            string
	AvailabilityNote string // free-text availability request, e.g. "not to be shifted Wednesdays"
	PreferredSlots   string // free-text slot preference, passed through untouched
	Status           string

	// Historical counters, persisted across runs.
	// WeekdayShifts + WeekendShifts is the authoritative historical total.
	WeekdayShifts int
	WeekendShifts int

	// RotationCount is the number of completed extra-shift rotations
	// within the current fairness cycle.
	RotationCount int

	// ISO dates ("2006-01-02") of the most recent stampings, empty if never.
	LastExtraShiftDate   string
	LastWeekendShiftDate string
}

// TotalShifts returns the authoritative historical shift total.
func (s StaffRecord) TotalShifts() int {
	return s.WeekdayShifts + s.WeekendShifts
}

// IsActive reports whether the staff member's status does not match the
// configured on-leave marker (case-insensitive).
func (s StaffRecord) IsActive(onLeaveStatus string) bool {
	return !strings.EqualFold(s.Status, onLeaveStatus)
}

// Settings holds the per-slot coverage requirements and the status text
// that marks a staff member as on leave.
type Settings struct {
	// Required headcounts per slot kind. Valid values are 1 or 2.
	ReqWeekday       int
	ReqFridayEvening int
	ReqSaturday      int
	ReqSunday        int

	// OnLeaveStatus is the Status value that excludes a staff member
	// from scheduling.
	OnLeaveStatus string
}
