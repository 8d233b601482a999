package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var exercisesDate string

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Fetch exercise data, optionally for one date",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := newAPIClient().GetExercises(cmd.Context(), exercisesDate)
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
	exercisesCmd.Flags().StringVar(&exercisesDate, "date", "", "Date filter (YYYY-MM-DD, omitted when unset)")
	rootCmd.AddCommand(exercisesCmd)
}
