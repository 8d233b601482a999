package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coldshrine/calorista/config"
	"github.com/coldshrine/calorista/internal/logging"
)

var (
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "calorista",
	Short: "FatSecret nutrition data sync",
	Long: `Calorista pulls food entries, exercises and profile weight from the
FatSecret platform API, signing every request with OAuth 1.0 HMAC-SHA1,
and caches each day's entries in a key-value store keyed by date.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.Configure(cfg.Log.Level, cfg.Log.Format)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("execution failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}
