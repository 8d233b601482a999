package cmd

import (
	"github.com/spf13/cobra"

	"github.com/coldshrine/calorista/internal/workflow"
)

var scheduleDays int

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule the daily sync workflow on its cron spec",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newTemporalClient()
		if err != nil {
			return err
		}
		defer c.Close()

		params := workflow.DailySyncParams{Days: scheduleDays}
		if err := workflow.Schedule(cmd.Context(), c, cfg.Temporal.TaskQueue, cfg.Temporal.CronSchedule, params); err != nil {
			return err
		}
		logger.Info().
			Str("cron", cfg.Temporal.CronSchedule).
			Int("days", scheduleDays).
			Msg("daily sync scheduled")
		return nil
	},
}

func init() {
	scheduleCmd.Flags().IntVar(&scheduleDays, "days", 1, "Window length in days, ending today")
	rootCmd.AddCommand(scheduleCmd)
}
