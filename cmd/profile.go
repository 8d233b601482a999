package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Fetch the authenticated user's weight profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := newAPIClient().GetProfile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Hello! Your current weight is %gkg\n", profile.LastWeightKG)
		if profile.GoalWeightKG > 0 {
			fmt.Printf("Goal weight: %gkg\n", profile.GoalWeightKG)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
