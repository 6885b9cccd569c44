package roster

import (
	"sort"

	"github.com/denizocal/dutyroster/pkg/core/model"
)

// SelectFairest picks countNeeded staff from the pool, one at a time.
// Each pick takes the candidate with the lowest current-run total, tie
// broken by lowest historical total, tie broken by name ascending. The
// result is padded with the unfilled marker if the pool runs out.
//
// The ordering is fully deterministic: equal inputs always produce the
// same picks, with no randomness anywhere.
func SelectFairest(pool []string, countNeeded int, tracker *Tracker, history map[string]model.StaffRecord) []Position {
	remaining := make([]string, len(pool))
	copy(remaining, pool)

	picks := make([]Position, 0, countNeeded)

	for len(picks) < countNeeded && len(remaining) > 0 {
		sort.Slice(remaining, func(i, j int) bool {
			return lessFair(remaining[i], remaining[j], tracker, history)
		})

		picks = append(picks, Position(remaining[0]))
		remaining = remaining[1:]
	}

	for len(picks) < countNeeded {
		picks = append(picks, PositionUnfilled)
	}

	return picks
}

// lessFair orders candidate a before b when a is the fairer next pick.
func lessFair(a, b string, tracker *Tracker, history map[string]model.StaffRecord) bool {
	runA, runB := tracker.Get(a).TotalShifts, tracker.Get(b).TotalShifts
	if runA != runB {
		return runA < runB
	}

	histA, histB := history[a].TotalShifts(), history[b].TotalShifts()
	if histA != histB {
		return histA < histB
	}

	return a < b
}
