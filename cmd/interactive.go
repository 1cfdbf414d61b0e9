package cmd

import (
	"github.com/yogat3ch/30-day-scheduler/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to preview, create and clean up guided-session events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
