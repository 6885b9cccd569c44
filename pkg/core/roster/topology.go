package roster

import "github.com/denizocal/dutyroster/pkg/core/model"

// Day is a day of the week in the roster grid.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// SlotLabel is the time range of a slot within a day.
type SlotLabel string

const (
	SlotMorning   SlotLabel = "08:00-13:00"
	SlotAfternoon SlotLabel = "13:00-18:00"
	SlotEvening   SlotLabel = "18:00-23:00"

	SlotWeekendDay     SlotLabel = "09:00-16:00"
	SlotWeekendEvening SlotLabel = "16:00-23:00"
)

// Grid ordering. Maps don't iterate deterministically, so every walk of
// the schedule goes through these slices.
var (
	Weekdays    = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}
	WeekendDays = []Day{Saturday, Sunday}

	WeekdaySlots = []SlotLabel{SlotMorning, SlotAfternoon, SlotEvening}
	WeekendSlots = []SlotLabel{SlotWeekendDay, SlotWeekendEvening}
)

// SlotsFor returns the ordered slot labels for a day.
func SlotsFor(day Day) []SlotLabel {
	if IsWeekend(day) {
		return WeekendSlots
	}
	return WeekdaySlots
}

// IsWeekend reports whether day is Saturday or Sunday.
func IsWeekend(day Day) bool {
	return day == Saturday || day == Sunday
}

// Position is one of the two staff positions in a slot. It holds either
// a staff name or one of the two structural markers below.
type Position string

const (
	// PositionUnfilled marks a required position the search could not fill.
	PositionUnfilled Position = ""

	// PositionNotApplicable marks the second position of a capacity-1 slot.
	// It is structurally absent rather than empty, so consumers can tell
	// "nobody needed" apart from "nobody found".
	PositionNotApplicable Position = "N/A"
)

// IsStaffed reports whether the position holds a staff name.
func (p Position) IsStaffed() bool {
	return p != PositionUnfilled && p != PositionNotApplicable
}

// maxSlotPositions is the structural width of every slot. Capacity-1
// slots mark the second position not-applicable.
const maxSlotPositions = 2

// Slot is a (day, time-range) unit of coverage with a required headcount.
type Slot struct {
	Day       Day
	Label     SlotLabel
	Capacity  int // required headcount, 1 or 2
	Positions [maxSlotPositions]Position
}

// WeekSchedule maps day -> slot label -> slot for one week.
type WeekSchedule map[Day]map[SlotLabel]*Slot

// TwoWeekSchedule is the full roster grid. Its structure is identical
// and fixed regardless of staffing outcome; only assignments vary.
type TwoWeekSchedule struct {
	Week1 WeekSchedule
	Week2 WeekSchedule
}

// Week returns the schedule for week number 1 or 2.
func (s *TwoWeekSchedule) Week(n int) WeekSchedule {
	if n == 2 {
		return s.Week2
	}
	return s.Week1
}

// NewTwoWeekSchedule builds the empty two-week grid for the given
// settings. Weekday days carry three slots (Friday's evening slot takes
// its capacity from ReqFridayEvening), weekend days two. Every slot has
// two positions; where capacity is 1 the second position is marked
// not-applicable, all others start unfilled.
func NewTwoWeekSchedule(settings model.Settings) *TwoWeekSchedule {
	return &TwoWeekSchedule{
		Week1: newWeekSchedule(settings),
		Week2: newWeekSchedule(settings),
	}
}

func newWeekSchedule(settings model.Settings) WeekSchedule {
	week := make(WeekSchedule, len(Weekdays)+len(WeekendDays))

	for _, day := range Weekdays {
		week[day] = make(map[SlotLabel]*Slot, len(WeekdaySlots))
		for _, label := range WeekdaySlots {
			capacity := settings.ReqWeekday
			if day == Friday && label == SlotEvening {
				capacity = settings.ReqFridayEvening
			}
			week[day][label] = newSlot(day, label, capacity)
		}
	}

	for _, day := range WeekendDays {
		capacity := settings.ReqSaturday
		if day == Sunday {
			capacity = settings.ReqSunday
		}
		week[day] = make(map[SlotLabel]*Slot, len(WeekendSlots))
		for _, label := range WeekendSlots {
			week[day][label] = newSlot(day, label, capacity)
		}
	}

	return week
}

func newSlot(day Day, label SlotLabel, capacity int) *Slot {
	slot := &Slot{
		Day:      day,
		Label:    label,
		Capacity: capacity,
	}
	for i := capacity; i < maxSlotPositions; i++ {
		slot.Positions[i] = PositionNotApplicable
	}
	return slot
}

// WeekdayShiftUnits sums the required headcount of every weekday slot
// across both weeks. This is the divisor input for the extra-shift
// allocation.
func (s *TwoWeekSchedule) WeekdayShiftUnits() int {
	units := 0
	for _, week := range []WeekSchedule{s.Week1, s.Week2} {
		for _, day := range Weekdays {
			for _, label := range WeekdaySlots {
				units += week[day][label].Capacity
			}
		}
	}
	return units
}
