package roster

import "github.com/denizocal/dutyroster/pkg/core/model"

// Stage is one level of constraint relaxation in the fallback search
// for a slot position.
type Stage string

const (
	StageStrict               Stage = "STRICT"
	StageRelaxCap             Stage = "RELAX_CAP"
	StageRelaxSameDay         Stage = "RELAX_SAMEDAY"
	StageRelaxWeekExclusivity Stage = "RELAX_WEEK_EXCLUSIVITY"
	StageRelaxCycleCap        Stage = "RELAX_CYCLE_CAP"
)

// StageRules names a stage and toggles the exclusivity rules it keeps
// active. Availability is never relaxed and has no toggle here: a staff
// member whose note blocks a day stays blocked at every stage.
type StageRules struct {
	Stage Stage

	WeekdayCap    bool // current-run weekday count below the allowed cap
	SameDay       bool // no other assignment on the same day of the same week
	Adjacent      bool // first weekday slot: didn't work the previous weekday's last slot
	WeekendCap    bool // current-run weekend count is zero (once per cycle)
	WeekExclusive bool // week2 only: not among week1's weekend staff
}

// WeekdayStages is the ordered relaxation sequence for weekday slot
// positions. Each later stage disables exactly one rule; the order is
// the auditable contract of the fallback search.
func WeekdayStages() []StageRules {
	return []StageRules{
		{Stage: StageStrict, WeekdayCap: true, SameDay: true, Adjacent: true},
		{Stage: StageRelaxCap, SameDay: true, Adjacent: true},
		{Stage: StageRelaxSameDay, Adjacent: true},
	}
}

// WeekendStages is the ordered relaxation sequence for weekend slot
// positions. The week-exclusivity stage only exists in week 2; week 1
// has no prior weekend to be exclusive against.
func WeekendStages(week int) []StageRules {
	if week == 2 {
		return []StageRules{
			{Stage: StageStrict, WeekendCap: true, WeekExclusive: true, SameDay: true},
			{Stage: StageRelaxWeekExclusivity, WeekendCap: true, SameDay: true},
			{Stage: StageRelaxCycleCap, SameDay: true},
		}
	}
	return []StageRules{
		{Stage: StageStrict, WeekendCap: true, SameDay: true},
		{Stage: StageRelaxCycleCap, SameDay: true},
	}
}

// SlotContext carries the week state a single eligibility check needs.
type SlotContext struct {
	Week     int // 1 or 2
	Schedule WeekSchedule
	Day      Day
	Label    SlotLabel

	// PrevLastSlot is the last slot of the immediately preceding
	// weekday, chronologically across the whole run (Monday of week 2
	// looks back at Friday of week 1). Nil when there is none.
	PrevLastSlot *Slot
}

// firstWeekdaySlot reports whether the context points at the first slot
// of a weekday, the only place the adjacency rule applies.
func (c SlotContext) firstWeekdaySlot() bool {
	return !IsWeekend(c.Day) && c.Label == WeekdaySlots[0]
}

// EligibilityFilter evaluates whether a staff member may take a slot
// under a given relaxation stage. It reads run state (tracker, caps,
// week1 weekend set) but never mutates anything.
type EligibilityFilter struct {
	Tracker           *Tracker
	Allocation        ExtraShiftAllocation
	Week1WeekendStaff map[string]bool
}

// Eligible applies the stage's active rules to one staff member for one
// slot position.
func (f *EligibilityFilter) Eligible(staff model.StaffRecord, ctx SlotContext, rules StageRules) bool {
	if !AllowsDay(staff.AvailabilityNote, ctx.Day) {
		return false
	}

	if rules.SameDay && assignedOnDay(ctx.Schedule, ctx.Day, staff.Name) {
		return false
	}

	if rules.Adjacent && ctx.firstWeekdaySlot() && ctx.PrevLastSlot != nil && slotHolds(ctx.PrevLastSlot, staff.Name) {
		return false
	}

	tracking := f.Tracker.Get(staff.Name)

	if rules.WeekdayCap && tracking.WeekdayShifts >= f.Allocation.AllowedCap(staff.Name) {
		return false
	}

	if rules.WeekendCap && tracking.WeekendShifts >= 1 {
		return false
	}

	if rules.WeekExclusive && ctx.Week == 2 && f.Week1WeekendStaff[staff.Name] {
		return false
	}

	return true
}

// assignedOnDay reports whether the staff member already holds any
// position on the given day of the week schedule.
func assignedOnDay(week WeekSchedule, day Day, name string) bool {
	for _, label := range SlotsFor(day) {
		if slotHolds(week[day][label], name) {
			return true
		}
	}
	return false
}

// slotHolds reports whether the slot has the staff member in either
// position.
func slotHolds(slot *Slot, name string) bool {
	if slot == nil {
		return false
	}
	for _, pos := range slot.Positions {
		if pos.IsStaffed() && string(pos) == name {
			return true
		}
	}
	return false
}
