package cmd

import (
	"os"

	"github.com/yogat3ch/30-day-scheduler/pkg/app"
	"github.com/yogat3ch/30-day-scheduler/pkg/syncer"
	"github.com/yogat3ch/30-day-scheduler/pkg/tui"

	"github.com/spf13/cobra"
)

var resyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Rebuild the event log from the calendar",
	Long: `Overwrite the created-events CSV with the events currently on the calendar in the
lookup window, e.g. after events were created by hand or the log was lost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionsOnly, _ := cmd.Flags().GetBool("sessions-only")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		svc, err := app.Open(ctx, cfg)
		if err != nil {
			return err
		}

		_, err = syncer.Resync(ctx, cfg.ToSyncConfig(), svc.Calendar, tui.NewConsole(os.Stdout), sessionsOnly)
		return err
	},
}

func init() {
	rootCmd.AddCommand(resyncCmd)
	resyncCmd.Flags().Bool("sessions-only", false, "Only record events titled as guided sessions")
}
