package db

import "context"

// StaffStore defines the staff directory operations.
type StaffStore interface {
	GetStaff(ctx context.Context) ([]Staff, error)
	ResetRotationCounters(ctx context.Context) error
}

// RosterStore defines the roster persistence operations. CommitRun is
// the only write that applies a scheduling run: roster, assignments and
// staff counter updates land in a single transaction, so a declined
// preview leaves the store untouched.
type RosterStore interface {
	GetRosters(ctx context.Context) ([]Roster, error)
	GetAssignments(ctx context.Context, rosterID string) ([]Assignment, error)
	CommitRun(ctx context.Context, roster Roster, assignments []Assignment, staff []Staff) error
}
