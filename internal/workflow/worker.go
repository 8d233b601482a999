package workflow

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

// ScheduledWorkflowID is the stable ID of the cron-scheduled daily sync, so
// repeated schedule calls replace rather than stack runs.
const ScheduledWorkflowID = "calorista-daily-sync"

// RunWorker registers the sync workflow and activity on the task queue and
// polls until interrupted. SetActivityDependencies must have been called.
func RunWorker(c client.Client, taskQueue string) error {
	w := worker.New(c, taskQueue, worker.Options{})
	w.RegisterWorkflow(DailySync)
	w.RegisterActivity(SyncRangeActivity)

	if err := w.Run(worker.InterruptCh()); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	return nil
}

// Schedule starts the daily sync workflow on the given cron spec.
func Schedule(ctx context.Context, c client.Client, taskQueue, cronSpec string, params DailySyncParams) error {
	options := client.StartWorkflowOptions{
		ID:           ScheduledWorkflowID,
		TaskQueue:    taskQueue,
		CronSchedule: cronSpec,
	}
	if _, err := c.ExecuteWorkflow(ctx, options, DailySync, params); err != nil {
		return fmt.Errorf("schedule daily sync: %w", err)
	}
	return nil
}
