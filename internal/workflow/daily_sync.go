package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/coldshrine/calorista/internal/domain"
)

// DailySyncParams configures one scheduled sync run. Days is the window
// length ending today; values below 1 sync today only.
type DailySyncParams struct {
	Days int `json:"days"`
}

// SyncRangeResult reports what a sync run covered.
type SyncRangeResult struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	SyncedDays int    `json:"synced_days"`
}

// DailySync computes the window ending today and runs the sync activity with
// a bounded retry policy, mirroring the original daily orchestration.
func DailySync(ctx workflow.Context, params DailySyncParams) (*SyncRangeResult, error) {
	logger := workflow.GetLogger(ctx)

	days := params.Days
	if days < 1 {
		days = 1
	}
	end := workflow.Now(ctx).UTC()
	start := end.AddDate(0, 0, -(days - 1))
	startDate := domain.FormatDay(start)
	endDate := domain.FormatDay(end)

	logger.Info("Starting daily sync workflow", "start", startDate, "end", endDate)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    60 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Minute,
			MaximumAttempts:    3,
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)

	var result SyncRangeResult
	if err := workflow.ExecuteActivity(activityCtx, SyncRangeActivity, startDate, endDate).Get(ctx, &result); err != nil {
		logger.Error("Daily sync failed", "error", err)
		return nil, err
	}

	logger.Info("Daily sync completed", "syncedDays", result.SyncedDays)
	return &result, nil
}
