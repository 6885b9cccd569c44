package roster

import (
	"sort"

	"github.com/denizocal/dutyroster/pkg/core/model"
)

// ExtraShiftAllocation is the pre-computed weekday workload split for
// one run. Base is the evenly divided weekday allotment per active
// staff member; the Allowed set names the staff permitted base+1 this
// run to absorb the indivisible remainder.
type ExtraShiftAllocation struct {
	Base    int
	Allowed map[string]bool
}

// AllowedCap returns the weekday cap for the staff member this run.
func (a ExtraShiftAllocation) AllowedCap(name string) int {
	if a.Allowed[name] {
		return a.Base + 1
	}
	return a.Base
}

// AllotExtraShifts divides the schedule's weekday shift units across
// the active staff. With units = sum of all weekday slot headcounts
// over both weeks and n active staff, each member owes floor(units/n)
// weekday shifts; the units mod n staff with the lowest rotation count
// (tie-broken by lowest historical total, then name ascending) are
// flagged for one extra. Rotating the flag by rotation count is what
// spreads the uneven remainder across the cycle.
func AllotExtraShifts(active []model.StaffRecord, schedule *TwoWeekSchedule) ExtraShiftAllocation {
	allocation := ExtraShiftAllocation{Allowed: make(map[string]bool)}

	if len(active) == 0 {
		return allocation
	}

	units := schedule.WeekdayShiftUnits()
	allocation.Base = units / len(active)
	remainder := units % len(active)

	ranked := make([]model.StaffRecord, len(active))
	copy(ranked, active)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.RotationCount != b.RotationCount {
			return a.RotationCount < b.RotationCount
		}
		if a.TotalShifts() != b.TotalShifts() {
			return a.TotalShifts() < b.TotalShifts()
		}
		return a.Name < b.Name
	})

	for i := 0; i < remainder; i++ {
		allocation.Allowed[ranked[i].Name] = true
	}

	return allocation
}
