package cmd

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/coldshrine/calorista/internal/domain"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Fetch and print today's food entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := domain.FormatDay(time.Now())
		payload, err := newAPIClient().GetFoodEntries(cmd.Context(), date)
		if err != nil {
			return err
		}

		pretty, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("Today's Food Entries (%s):\n%s\n", date, pretty)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
