package cmd

import (
	"github.com/spf13/cobra"

	"github.com/coldshrine/calorista/internal/workflow"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the Temporal worker for scheduled syncs",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newSyncService()
		if err != nil {
			return err
		}
		workflow.SetActivityDependencies(svc)

		c, err := newTemporalClient()
		if err != nil {
			return err
		}
		defer c.Close()

		logger.Info().Str("task_queue", cfg.Temporal.TaskQueue).Msg("worker starting")
		return workflow.RunWorker(c, cfg.Temporal.TaskQueue)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
