package workflow

import (
	"context"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/coldshrine/calorista/internal/usecase"
)

// ActivityDependencies holds the dependencies needed by activities.
type ActivityDependencies struct {
	Sync *usecase.SyncService
}

var activityDeps *ActivityDependencies

// SetActivityDependencies wires the sync service into the activities before a
// worker starts polling.
func SetActivityDependencies(sync *usecase.SyncService) {
	activityDeps = &ActivityDependencies{Sync: sync}
}

// SyncRangeActivity runs one historical sync over the given window and
// reports how many days landed.
func SyncRangeActivity(ctx context.Context, startDate, endDate string) (*SyncRangeResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Processing sync range activity", "start", startDate, "end", endDate)

	if activityDeps == nil || activityDeps.Sync == nil {
		logger.Error("Activity dependencies not set")
		return nil, temporal.NewApplicationError("activity dependencies not initialized", "DependencyError")
	}

	days, err := activityDeps.Sync.SyncRange(ctx, startDate, endDate)
	if err != nil {
		logger.Error("Sync range failed", "start", startDate, "end", endDate, "error", err)
		return nil, err
	}

	logger.Info("Sync range finished", "syncedDays", len(days))
	return &SyncRangeResult{Start: startDate, End: endDate, SyncedDays: len(days)}, nil
}
