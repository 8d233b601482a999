package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/coldshrine/calorista/internal/domain"
)

var summaryDate string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print calorie and macro totals for a cached day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := summaryDate
		if date == "" {
			date = domain.FormatDay(time.Now())
		}

		svc, err := newSyncService()
		if err != nil {
			return err
		}
		value, found, err := svc.CachedDay(cmd.Context(), date)
		if err != nil {
			return err
		}
		if !found {
			fmt.Printf("No cached entries for %s. Run sync first.\n", date)
			return nil
		}

		raw := domain.CachedEntryList(value)
		entries := make([]*domain.FoodEntry, 0, len(raw))
		for _, item := range raw {
			entry, err := domain.ParseFoodEntry(item)
			if err != nil {
				logger.Warn().Err(err).Str("date", date).Msg("skipping unparseable entry")
				continue
			}
			entries = append(entries, entry)
		}

		totals := domain.Totals(entries)
		fmt.Printf("Summary for %s (%d entries):\n", date, len(entries))
		fmt.Printf("  Calories: %.0f kcal\n", totals.Calories)
		fmt.Printf("  Protein:  %.1f g\n", totals.Protein)
		fmt.Printf("  Carbs:    %.1f g\n", totals.Carbohydrate)
		fmt.Printf("  Fat:      %.1f g\n", totals.Fat)
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "Day to summarize (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(summaryCmd)
}
