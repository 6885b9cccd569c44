package roster

import "github.com/denizocal/dutyroster/pkg/core/model"

// IsCycleComplete reports whether a full extra-shift rotation has
// completed: the active staff subset is non-empty and every member has
// a rotation count above zero. The surrounding workflow uses this
// signal to decide when to reset the counters and start a new cycle.
//
// Pure and stateless; safe to call on any directory snapshot.
func IsCycleComplete(staff []model.StaffRecord, onLeaveStatus string) bool {
	activeSeen := false

	for _, s := range staff {
		if !s.IsActive(onLeaveStatus) {
			continue
		}
		activeSeen = true
		if s.RotationCount == 0 {
			return false
		}
	}

	return activeSeen
}
