package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/denizocal/dutyroster/pkg/core/roster"
	"github.com/denizocal/dutyroster/pkg/db"
)

// RotationStatus describes how far the current fairness cycle has come
type RotationStatus struct {
	Complete    bool
	ActiveCount int

	// Pending lists active staff who have not yet completed an
	// extra-shift rotation this cycle, sorted by name
	Pending []string
}

// RotationStore defines the database operations needed for rotation
// cycle bookkeeping
type RotationStore interface {
	GetStaff(ctx context.Context) ([]db.Staff, error)
	ResetRotationCounters(ctx context.Context) error
}

// CheckRotation reports whether every active staff member has completed
// at least one extra-shift rotation in the current cycle
func CheckRotation(
	ctx context.Context,
	database RotationStore,
	onLeaveStatus string,
	logger *zap.Logger,
) (*RotationStatus, error) {
	logger.Debug("Fetching staff for rotation check")
	staffRows, err := database.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	records := staffFromDB(staffRows)

	status := &RotationStatus{
		Complete: roster.IsCycleComplete(records, onLeaveStatus),
	}

	for _, record := range records {
		if !record.IsActive(onLeaveStatus) {
			continue
		}
		status.ActiveCount++
		if record.RotationCount == 0 {
			status.Pending = append(status.Pending, record.Name)
		}
	}
	sort.Strings(status.Pending)

	logger.Info("Rotation cycle status",
		zap.Bool("complete", status.Complete),
		zap.Int("active", status.ActiveCount),
		zap.Int("pending", len(status.Pending)))

	return status, nil
}

// ResetRotation zeroes every staff member's rotation counter, starting a
// new fairness cycle. Historical shift totals are left untouched.
func ResetRotation(ctx context.Context, database RotationStore, logger *zap.Logger) error {
	logger.Info("Resetting rotation counters")
	if err := database.ResetRotationCounters(ctx); err != nil {
		return fmt.Errorf("failed to reset rotation counters: %w", err)
	}
	return nil
}
