package cmd

import (
	"github.com/spf13/cobra"
)

var authLogout bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Run the FatSecret OAuth flow and save access tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth := newAuthenticator()

		if authLogout {
			if err := auth.Logout(); err != nil {
				return err
			}
			logger.Info().Msg("saved tokens cleared")
			return nil
		}

		if _, err := auth.Authenticate(cmd.Context()); err != nil {
			return err
		}
		logger.Info().Msg("authentication complete")
		return nil
	},
}

func init() {
	authCmd.Flags().BoolVar(&authLogout, "logout", false, "Clear saved access tokens instead of authenticating")
	rootCmd.AddCommand(authCmd)
}
