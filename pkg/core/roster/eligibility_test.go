package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizocal/dutyroster/pkg/core/model"
)

func newTestFilter(base int) (*EligibilityFilter, *Tracker) {
	tracker := NewTracker(nil)
	filter := &EligibilityFilter{
		Tracker:           tracker,
		Allocation:        ExtraShiftAllocation{Base: base, Allowed: map[string]bool{}},
		Week1WeekendStaff: map[string]bool{},
	}
	return filter, tracker
}

func weekdayContext(week WeekSchedule, day Day, label SlotLabel) SlotContext {
	return SlotContext{Week: 1, Schedule: week, Day: day, Label: label}
}

func TestWeekdayStages_Ordering(t *testing.T) {
	stages := WeekdayStages()

	require.Len(t, stages, 3)
	assert.Equal(t, StageStrict, stages[0].Stage)
	assert.Equal(t, StageRelaxCap, stages[1].Stage)
	assert.Equal(t, StageRelaxSameDay, stages[2].Stage)

	// Each later stage drops exactly one rule; adjacency survives all.
	assert.False(t, stages[1].WeekdayCap)
	assert.True(t, stages[1].SameDay)
	assert.False(t, stages[2].SameDay)
	for _, s := range stages {
		assert.True(t, s.Adjacent, "%s must keep the adjacency rule", s.Stage)
	}
}

func TestWeekendStages_WeekExclusivityOnlyInWeekTwo(t *testing.T) {
	week1 := WeekendStages(1)
	require.Len(t, week1, 2)
	assert.Equal(t, StageStrict, week1[0].Stage)
	assert.Equal(t, StageRelaxCycleCap, week1[1].Stage)

	week2 := WeekendStages(2)
	require.Len(t, week2, 3)
	assert.Equal(t, StageRelaxWeekExclusivity, week2[1].Stage)
	assert.True(t, week2[1].WeekendCap, "relaxing week exclusivity keeps the cycle cap")

	// Same-day is never relaxed on weekends.
	for _, s := range append(week1, week2...) {
		assert.True(t, s.SameDay)
	}
}

func TestEligible_AvailabilityNeverRelaxed(t *testing.T) {
	filter, _ := newTestFilter(5)
	week := newWeekSchedule(testSettings())
	staff := model.StaffRecord{Name: "Ali", AvailabilityNote: "not to be shifted Wednesdays"}

	ctx := weekdayContext(week, Wednesday, SlotMorning)
	for _, rules := range WeekdayStages() {
		assert.False(t, filter.Eligible(staff, ctx, rules), "stage %s must still honor availability", rules.Stage)
	}
}

func TestEligible_SameDayExclusivity(t *testing.T) {
	filter, _ := newTestFilter(5)
	week := newWeekSchedule(testSettings())
	week[Monday][SlotMorning].Positions[0] = "Ali"

	staff := model.StaffRecord{Name: "Ali"}
	ctx := weekdayContext(week, Monday, SlotAfternoon)

	assert.False(t, filter.Eligible(staff, ctx, WeekdayStages()[0]))
	assert.False(t, filter.Eligible(staff, ctx, WeekdayStages()[1]), "RELAX_CAP keeps same-day")
	assert.True(t, filter.Eligible(staff, ctx, WeekdayStages()[2]), "RELAX_SAMEDAY drops it")
}

func TestEligible_AdjacencyOnlyOnFirstWeekdaySlot(t *testing.T) {
	filter, _ := newTestFilter(5)
	week := newWeekSchedule(testSettings())

	prev := week[Monday][SlotEvening]
	prev.Positions[0] = "Ali"

	staff := model.StaffRecord{Name: "Ali"}
	strict := WeekdayStages()[0]

	first := SlotContext{Week: 1, Schedule: week, Day: Tuesday, Label: SlotMorning, PrevLastSlot: prev}
	assert.False(t, filter.Eligible(staff, first, strict), "worked the previous evening, blocked from the next morning")

	second := SlotContext{Week: 1, Schedule: week, Day: Tuesday, Label: SlotAfternoon, PrevLastSlot: prev}
	assert.True(t, filter.Eligible(staff, second, strict), "adjacency only guards the first slot")
}

func TestEligible_WeekdayCap(t *testing.T) {
	filter, tracker := newTestFilter(2)
	week := newWeekSchedule(testSettings())

	tracker.RecordWeekday("Ali")
	tracker.RecordWeekday("Ali")

	staff := model.StaffRecord{Name: "Ali"}
	ctx := weekdayContext(week, Thursday, SlotMorning)

	assert.False(t, filter.Eligible(staff, ctx, WeekdayStages()[0]), "at cap under STRICT")
	assert.True(t, filter.Eligible(staff, ctx, WeekdayStages()[1]), "RELAX_CAP ignores the cap")

	// An extra-shift flag raises the cap to base+1.
	filter.Allocation.Allowed["Ali"] = true
	assert.True(t, filter.Eligible(staff, ctx, WeekdayStages()[0]))
}

func TestEligible_WeekendCycleCap(t *testing.T) {
	filter, tracker := newTestFilter(5)
	week := newWeekSchedule(testSettings())

	tracker.RecordWeekend("Ali")

	staff := model.StaffRecord{Name: "Ali"}
	ctx := SlotContext{Week: 1, Schedule: week, Day: Saturday, Label: SlotWeekendDay}

	stages := WeekendStages(1)
	assert.False(t, filter.Eligible(staff, ctx, stages[0]), "one weekend shift per cycle under STRICT")
	assert.True(t, filter.Eligible(staff, ctx, stages[1]), "RELAX_CYCLE_CAP permits a second")
}

func TestEligible_Week2WeekendExclusivity(t *testing.T) {
	filter, _ := newTestFilter(5)
	week := newWeekSchedule(testSettings())

	filter.Week1WeekendStaff["Ali"] = true

	staff := model.StaffRecord{Name: "Ali"}
	ctx := SlotContext{Week: 2, Schedule: week, Day: Sunday, Label: SlotWeekendEvening}

	stages := WeekendStages(2)
	assert.False(t, filter.Eligible(staff, ctx, stages[0]), "week1 weekend staff blocked in week2 under STRICT")
	assert.True(t, filter.Eligible(staff, ctx, stages[1]), "RELAX_WEEK_EXCLUSIVITY lifts the week rule")
}
