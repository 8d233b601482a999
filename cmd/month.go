package cmd

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/coldshrine/calorista/internal/domain"
)

var monthDate string

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Fetch a whole month of food entries in one call",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := monthDate
		if date == "" {
			date = domain.FormatDay(time.Now())
		}

		payload, err := newAPIClient().GetMonthlyFoodEntries(cmd.Context(), date)
		if err != nil {
			return err
		}

		pretty, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(pretty))
		return nil
	},
}

func init() {
	monthCmd.Flags().StringVar(&monthDate, "date", "", "Any date within the month (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(monthCmd)
}
