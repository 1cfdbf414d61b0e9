package cmd

import (
	"os"

	"github.com/yogat3ch/30-day-scheduler/pkg/app"
	"github.com/yogat3ch/30-day-scheduler/pkg/syncer"
	"github.com/yogat3ch/30-day-scheduler/pkg/tui"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Create calendar events for the signup sheet",
	Long: `Read the signup sheet, skip sessions already on the calendar and preview the events that
would be created. Pass --run to create them after confirming.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, _ := cmd.Flags().GetBool("run")
		limit, _ := cmd.Flags().GetInt("limit")
		teacher, _ := cmd.Flags().GetString("teacher")
		includeExisting, _ := cmd.Flags().GetBool("include-existing")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		svc, err := app.Open(ctx, cfg)
		if err != nil {
			return err
		}

		sc := cfg.ToSyncConfig()
		sc.DryRun = !run
		sc.Limit = limit
		sc.Teacher = teacher
		sc.IncludeExisting = includeExisting

		return syncer.New(sc, svc.Reader, svc.Calendar, tui.NewConsole(os.Stdout)).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Bool("run", false, "Actually create the events (default is a dry run)")
	syncCmd.Flags().IntP("limit", "l", 0, "Create at most this many events")
	syncCmd.Flags().StringP("teacher", "t", "", "Only schedule sessions for this teacher")
	syncCmd.Flags().Bool("include-existing", false, "Do not skip sessions already on the calendar")
}
