package roster

import "github.com/denizocal/dutyroster/pkg/core/model"

// ShiftTracking holds the per-run counters for one staff member. All
// counters start at zero; ExtraShiftAllowed is set once before the main
// loop and never changes mid-run.
type ShiftTracking struct {
	WeekdayShifts     int
	WeekendShifts     int
	TotalShifts       int
	ExtraShiftAllowed bool
}

// Tracker owns the ephemeral per-run counters, kept separate from the
// persisted historical counters on StaffRecord. A tracker belongs to
// exactly one scheduling run and is discarded after its counts are
// merged back.
type Tracker struct {
	records map[string]*ShiftTracking
}

// NewTracker creates zeroed tracking records for every staff member.
func NewTracker(staff []model.StaffRecord) *Tracker {
	records := make(map[string]*ShiftTracking, len(staff))
	for _, s := range staff {
		records[s.Name] = &ShiftTracking{}
	}
	return &Tracker{records: records}
}

// Get returns the tracking record for a staff member, or a zero record
// for unknown names so callers can read counts unconditionally.
func (t *Tracker) Get(name string) *ShiftTracking {
	if rec, ok := t.records[name]; ok {
		return rec
	}
	rec := &ShiftTracking{}
	t.records[name] = rec
	return rec
}

// RecordWeekday counts a weekday assignment for the staff member.
func (t *Tracker) RecordWeekday(name string) {
	rec := t.Get(name)
	rec.WeekdayShifts++
	rec.TotalShifts++
}

// RecordWeekend counts a weekend assignment for the staff member.
func (t *Tracker) RecordWeekend(name string) {
	rec := t.Get(name)
	rec.WeekendShifts++
	rec.TotalShifts++
}

// MarkExtraShiftAllowed flags the staff member as permitted one extra
// weekday shift this run.
func (t *Tracker) MarkExtraShiftAllowed(name string) {
	t.Get(name).ExtraShiftAllowed = true
}
