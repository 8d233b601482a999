package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Import an exported entries file into the cache",
	Long: `Reads a JSON export produced by the sync command, regroups the flat
entry list by day and caches each day's group.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read export: %w", err)
		}
		var entries []map[string]any
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("decode export: %w", err)
		}

		svc, err := newSyncService()
		if err != nil {
			return err
		}
		counts, err := svc.LoadExport(cmd.Context(), entries)
		if err != nil {
			return err
		}

		total := 0
		for _, n := range counts {
			total += n
		}
		fmt.Printf("Cached %d entries across %d days.\n", total, len(counts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
