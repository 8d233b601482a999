package cmd

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var searchMax int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the food database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		payload, err := newAPIClient().SearchFoods(cmd.Context(), query, searchMax)
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
	searchCmd.Flags().IntVar(&searchMax, "max", 50, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
