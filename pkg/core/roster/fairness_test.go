package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizocal/dutyroster/pkg/core/model"
)

func staffByName(records ...model.StaffRecord) map[string]model.StaffRecord {
	byName := make(map[string]model.StaffRecord, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}
	return byName
}

func TestSelectFairest_LexicalTieBreakOnEqualTotals(t *testing.T) {
	history := staffByName(
		model.StaffRecord{Name: "Cem"},
		model.StaffRecord{Name: "Ali"},
		model.StaffRecord{Name: "Banu"},
	)
	tracker := NewTracker(nil)

	picks := SelectFairest([]string{"Cem", "Ali", "Banu"}, 3, tracker, history)

	require.Len(t, picks, 3)
	assert.Equal(t, Position("Ali"), picks[0])
	assert.Equal(t, Position("Banu"), picks[1])
	assert.Equal(t, Position("Cem"), picks[2])
}

func TestSelectFairest_CurrentRunTotalsBeforeHistory(t *testing.T) {
	// Ali has a big historical total but zero shifts this run; Banu
	// already worked once this run. Current-run totals rank first.
	history := staffByName(
		model.StaffRecord{Name: "Ali", WeekdayShifts: 40},
		model.StaffRecord{Name: "Banu", WeekdayShifts: 2},
	)
	tracker := NewTracker(nil)
	tracker.RecordWeekday("Banu")

	picks := SelectFairest([]string{"Ali", "Banu"}, 1, tracker, history)

	assert.Equal(t, Position("Ali"), picks[0])
}

func TestSelectFairest_HistoricalTotalsBreakRunTies(t *testing.T) {
	history := staffByName(
		model.StaffRecord{Name: "Ali", WeekdayShifts: 10, WeekendShifts: 2},
		model.StaffRecord{Name: "Banu", WeekdayShifts: 3, WeekendShifts: 1},
	)
	tracker := NewTracker(nil)

	picks := SelectFairest([]string{"Ali", "Banu"}, 2, tracker, history)

	assert.Equal(t, Position("Banu"), picks[0])
	assert.Equal(t, Position("Ali"), picks[1])
}

func TestSelectFairest_PadsWhenPoolExhausted(t *testing.T) {
	history := staffByName(model.StaffRecord{Name: "Ali"})
	tracker := NewTracker(nil)

	picks := SelectFairest([]string{"Ali"}, 3, tracker, history)

	require.Len(t, picks, 3)
	assert.Equal(t, Position("Ali"), picks[0])
	assert.Equal(t, PositionUnfilled, picks[1])
	assert.Equal(t, PositionUnfilled, picks[2])
}

func TestSelectFairest_DoesNotMutatePool(t *testing.T) {
	history := staffByName(
		model.StaffRecord{Name: "Cem"},
		model.StaffRecord{Name: "Ali"},
	)
	pool := []string{"Cem", "Ali"}

	SelectFairest(pool, 2, NewTracker(nil), history)

	assert.Equal(t, []string{"Cem", "Ali"}, pool)
}
