package db

// Staff represents a database staff record.
type Staff struct {
	Name                 string
	Region               string
	Level                string
	AvailabilityNote     string
	PreferredSlots       string
	Status               string
	WeekdayShifts        int
	WeekendShifts        int
	RotationCount        int
	LastExtraShiftDate   string // ISO date, empty if never
	LastWeekendShiftDate string // ISO date, empty if never
}

// Roster represents a committed two-week roster run.
type Roster struct {
	ID            string
	StartDate     string // ISO date of the roster's Monday
	ReferenceDate string // ISO date injected into the run
	Base          int    // evenly divided weekday allotment of the run
}

// Assignment represents one slot position of a committed roster.
// StaffName is empty for a position the search could not fill;
// NotApplicable marks the structurally absent second position of a
// capacity-1 slot.
type Assignment struct {
	ID            string
	RosterID      string
	Week          int // 1 or 2
	Day           string
	SlotLabel     string
	Position      int // 1-based
	ShiftDate     string // ISO calendar date of the slot's day
	StaffName     string
	NotApplicable bool
}
