package cmd

import (
	"os"

	"github.com/yogat3ch/30-day-scheduler/pkg/app"
	"github.com/yogat3ch/30-day-scheduler/pkg/syncer"
	"github.com/yogat3ch/30-day-scheduler/pkg/tui"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete every event recorded in the event log",
	Long: `Delete the events listed in the created-events CSV. Events that are already gone count
as deleted, and the CSV is removed once every deletion succeeded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		svc, err := app.Open(ctx, cfg)
		if err != nil {
			return err
		}

		_, err = syncer.NewDeleter(cfg.ToSyncConfig(), svc.Calendar, tui.NewConsole(os.Stdout)).Run(ctx)
		return err
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
