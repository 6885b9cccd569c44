package roster

import (
	"fmt"
	"sort"
	"time"

	"github.com/denizocal/dutyroster/pkg/core/model"
)

// StageUnfilled is the terminal state of a position search: every
// relaxation stage was exhausted without a candidate.
const StageUnfilled Stage = "UNFILLED"

// Warning reports one position that was filled under a relaxed stage,
// or left unfilled. Warnings are carried as values so the caller can
// alert a human; they never abort a run.
type Warning struct {
	Week     int
	Day      Day
	Slot     SlotLabel
	Position int // 1-based
	Stage    Stage
	Staff    string // empty when the position stayed unfilled
}

func (w Warning) String() string {
	if w.Stage == StageUnfilled {
		return fmt.Sprintf("week %d %s %s position %d left unfilled", w.Week, w.Day, w.Slot, w.Position)
	}
	return fmt.Sprintf("week %d %s %s position %d filled under %s (%s)", w.Week, w.Day, w.Slot, w.Position, w.Stage, w.Staff)
}

// Unfilled reports whether the warning marks an unfilled position.
func (w Warning) Unfilled() bool {
	return w.Stage == StageUnfilled
}

// RunInput is everything one scheduling run consumes. ReferenceDate is
// injected so the engine stays deterministic; the caller decides what
// "now" means.
type RunInput struct {
	Staff         []model.StaffRecord
	Settings      model.Settings
	ReferenceDate time.Time
}

// RunResult is the outcome of one scheduling run. Nothing in it aliases
// the caller's input: Staff is an updated copy, counters merged, all
// other fields passed through unchanged.
type RunResult struct {
	Schedule *TwoWeekSchedule

	// Staff is the updated directory in the input order.
	Staff []model.StaffRecord

	// Base is the evenly divided weekday allotment; ExtraShiftStaff
	// lists (sorted) who was permitted base+1 this run.
	Base            int
	ExtraShiftStaff []string

	Warnings []Warning

	// RotationCycleComplete signals that every active staff member has
	// completed at least one extra-shift rotation.
	RotationCycleComplete bool
}

// Run executes one full scheduling pass: week 1 then week 2, weekdays
// before weekends within each week, every slot position through the
// staged search. It is pure computation over its inputs: no clock, no
// I/O, no persistence.
func Run(input RunInput) (*RunResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Working copy: the caller's records are never mutated.
	working := make([]model.StaffRecord, len(input.Staff))
	copy(working, input.Staff)

	byName := make(map[string]*model.StaffRecord, len(working))
	history := make(map[string]model.StaffRecord, len(working))
	for i := range working {
		byName[working[i].Name] = &working[i]
		history[working[i].Name] = input.Staff[i]
	}

	active := make([]model.StaffRecord, 0, len(working))
	for _, s := range working {
		if s.IsActive(input.Settings.OnLeaveStatus) {
			active = append(active, s)
		}
	}

	schedule := NewTwoWeekSchedule(input.Settings)
	allocation := AllotExtraShifts(active, schedule)

	tracker := NewTracker(working)
	for name := range allocation.Allowed {
		tracker.MarkExtraShiftAllowed(name)
	}

	e := &engine{
		schedule: schedule,
		active:   active,
		byName:   byName,
		history:  history,
		tracker:  tracker,
		filter: &EligibilityFilter{
			Tracker:           tracker,
			Allocation:        allocation,
			Week1WeekendStaff: make(map[string]bool),
		},
		refDate: input.ReferenceDate,
	}

	for week := 1; week <= 2; week++ {
		e.fillWeek(week)
	}

	e.mergeCounters(working, allocation)

	extraStaff := make([]string, 0, len(allocation.Allowed))
	for name := range allocation.Allowed {
		extraStaff = append(extraStaff, name)
	}
	sort.Strings(extraStaff)

	return &RunResult{
		Schedule:              schedule,
		Staff:                 working,
		Base:                  allocation.Base,
		ExtraShiftStaff:       extraStaff,
		Warnings:              e.warnings,
		RotationCycleComplete: IsCycleComplete(working, input.Settings.OnLeaveStatus),
	}, nil
}

// validateInput rejects inputs no run can proceed on. These are the
// fatal pre-computation failures; everything past this point completes.
func validateInput(input RunInput) error {
	if input.Settings.OnLeaveStatus == "" {
		return fmt.Errorf("on-leave status text is empty")
	}

	for _, req := range []struct {
		name  string
		value int
	}{
		{"weekday", input.Settings.ReqWeekday},
		{"friday evening", input.Settings.ReqFridayEvening},
		{"saturday", input.Settings.ReqSaturday},
		{"sunday", input.Settings.ReqSunday},
	} {
		if req.value < 1 || req.value > maxSlotPositions {
			return fmt.Errorf("%s requirement %d out of range [1,%d]", req.name, req.value, maxSlotPositions)
		}
	}

	seen := make(map[string]bool, len(input.Staff))
	activeCount := 0
	for i, s := range input.Staff {
		if s.Name == "" {
			return fmt.Errorf("staff record %d has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate staff name %q", s.Name)
		}
		seen[s.Name] = true

		if s.Region == "" || s.Level == "" {
			return fmt.Errorf("staff %q is missing region or level", s.Name)
		}

		if s.IsActive(input.Settings.OnLeaveStatus) {
			activeCount++
		}
	}

	if activeCount == 0 {
		return fmt.Errorf("no active staff to schedule")
	}

	return nil
}

// engine holds the mutable state of one run. It is exclusively owned by
// a single Run invocation and never shared.
type engine struct {
	schedule *TwoWeekSchedule
	active   []model.StaffRecord
	byName   map[string]*model.StaffRecord
	history  map[string]model.StaffRecord
	tracker  *Tracker
	filter   *EligibilityFilter
	refDate  time.Time
	warnings []Warning
}

// fillWeek fills all weekday slots of a week (Monday through Friday, in
// slot label order), then the weekend slots.
func (e *engine) fillWeek(week int) {
	weekSched := e.schedule.Week(week)

	for _, day := range Weekdays {
		for _, label := range WeekdaySlots {
			e.fillSlot(week, weekSched, day, label, WeekdayStages())
		}
	}

	for _, day := range WeekendDays {
		for _, label := range WeekendSlots {
			e.fillSlot(week, weekSched, day, label, WeekendStages(week))
		}
	}
}

// fillSlot fills a slot position by position, each position running an
// independent staged search.
func (e *engine) fillSlot(week int, weekSched WeekSchedule, day Day, label SlotLabel, stages []StageRules) {
	slot := weekSched[day][label]
	ctx := SlotContext{
		Week:         week,
		Schedule:     weekSched,
		Day:          day,
		Label:        label,
		PrevLastSlot: e.previousWeekdayLastSlot(week, day),
	}

	for position := 0; position < slot.Capacity; position++ {
		e.fillPosition(ctx, slot, position, stages)
	}
}

// fillPosition walks the relaxation stages in order until one yields a
// non-empty pool, or records the terminal unfilled state.
func (e *engine) fillPosition(ctx SlotContext, slot *Slot, position int, stages []StageRules) {
	for _, rules := range stages {
		pool := e.eligiblePool(ctx, slot, rules)
		if len(pool) == 0 {
			continue
		}

		pick := SelectFairest(pool, 1, e.tracker, e.history)[0]
		slot.Positions[position] = pick
		e.recordAssignment(ctx, string(pick))

		if rules.Stage != StageStrict {
			e.warnings = append(e.warnings, Warning{
				Week:     ctx.Week,
				Day:      ctx.Day,
				Slot:     ctx.Label,
				Position: position + 1,
				Stage:    rules.Stage,
				Staff:    string(pick),
			})
		}
		return
	}

	slot.Positions[position] = PositionUnfilled
	e.warnings = append(e.warnings, Warning{
		Week:     ctx.Week,
		Day:      ctx.Day,
		Slot:     ctx.Label,
		Position: position + 1,
		Stage:    StageUnfilled,
	})
}

// eligiblePool collects the active staff eligible for the slot under
// the given stage, excluding anyone already chosen for an earlier
// position of this same slot.
func (e *engine) eligiblePool(ctx SlotContext, slot *Slot, rules StageRules) []string {
	pool := make([]string, 0, len(e.active))

	for _, staff := range e.active {
		if slotHolds(slot, staff.Name) {
			continue
		}
		if e.filter.Eligible(staff, ctx, rules) {
			pool = append(pool, staff.Name)
		}
	}

	return pool
}

// recordAssignment updates the run counters for a successful pick, and
// for weekend picks stamps the working record's last weekend date and
// feeds the week1 weekend set consulted by week2's exclusivity rule.
func (e *engine) recordAssignment(ctx SlotContext, name string) {
	if IsWeekend(ctx.Day) {
		e.tracker.RecordWeekend(name)
		if rec, ok := e.byName[name]; ok {
			rec.LastWeekendShiftDate = e.refDate.Format("2006-01-02")
		}
		if ctx.Week == 1 {
			e.filter.Week1WeekendStaff[name] = true
		}
		return
	}
	e.tracker.RecordWeekday(name)
}

// previousWeekdayLastSlot resolves the slot the adjacency rule checks:
// the evening slot of the weekday immediately before this one,
// chronologically across the whole run. Monday of week 2 looks back at
// Friday of week 1; Monday of week 1 has no predecessor, and weekend
// days are not subject to the rule.
func (e *engine) previousWeekdayLastSlot(week int, day Day) *Slot {
	if IsWeekend(day) {
		return nil
	}

	for i, d := range Weekdays {
		if d != day {
			continue
		}
		if i > 0 {
			return e.schedule.Week(week)[Weekdays[i-1]][SlotEvening]
		}
		if week == 2 {
			return e.schedule.Week1[Friday][SlotEvening]
		}
		return nil
	}
	return nil
}

// mergeCounters folds the run's tracked counts into the working staff
// records. Staff who were flagged for an extra shift and actually used
// it complete one rotation: rotationCount increments and the extra
// shift date is stamped.
func (e *engine) mergeCounters(working []model.StaffRecord, allocation ExtraShiftAllocation) {
	for i := range working {
		tracking := e.tracker.Get(working[i].Name)

		working[i].WeekdayShifts += tracking.WeekdayShifts
		working[i].WeekendShifts += tracking.WeekendShifts

		if tracking.ExtraShiftAllowed && tracking.WeekdayShifts > allocation.Base {
			working[i].RotationCount++
			working[i].LastExtraShiftDate = e.refDate.Format("2006-01-02")
		}
	}
}
