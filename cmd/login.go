package cmd

import (
	"fmt"

	"github.com/yogat3ch/30-day-scheduler/pkg/auth"
	"github.com/yogat3ch/30-day-scheduler/pkg/util"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize access to Google Calendar and Sheets",
	Long: `Open the Google consent page in the browser and save the resulting token next to the
client secret. Run this once before the first sync, or again when the token was revoked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		oc, err := auth.LoadClientConfig(cfg.Credentials.ClientSecret)
		if err != nil {
			return err
		}

		open := func(url string) error {
			fmt.Printf("Opening the consent page. If nothing happens, visit:\n\n%s\n\n", url)
			return util.OpenBrowser(url)
		}

		if _, err := auth.Login(cmd.Context(), oc, cfg.Credentials.Token, open); err != nil {
			return err
		}

		fmt.Printf("✅ Token saved to %s\n", cfg.Credentials.Token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
