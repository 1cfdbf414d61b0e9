package cmd

import (
	"fmt"
	"os"

	"github.com/yogat3ch/30-day-scheduler/pkg/app"
	"github.com/yogat3ch/30-day-scheduler/pkg/exporter"
	"github.com/yogat3ch/30-day-scheduler/pkg/syncer"
	"github.com/yogat3ch/30-day-scheduler/pkg/tui"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the pending sessions to an ICS file",
	Long: `Write the sessions a sync would create to an .ics file so they can be reviewed in any
calendar app before a live run. Nothing is written to the calendar.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		teacher, _ := cmd.Flags().GetString("teacher")
		includeExisting, _ := cmd.Flags().GetBool("include-existing")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		svc, err := app.Open(ctx, cfg)
		if err != nil {
			return err
		}

		sc := cfg.ToSyncConfig()
		sc.Teacher = teacher
		sc.IncludeExisting = includeExisting

		plan, err := syncer.New(sc, svc.Reader, svc.Calendar, tui.NewConsole(os.Stdout)).Plan(ctx)
		if err != nil {
			return err
		}
		plan.Report(os.Stdout)

		sessions := plan.Pending()
		if len(sessions) == 0 {
			return fmt.Errorf("no pending sessions to export")
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(sessions, loc, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d sessions to %s\n", len(sessions), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "sessions.ics", "Output file path")
	exportCmd.Flags().StringP("teacher", "t", "", "Only export sessions for this teacher")
	exportCmd.Flags().Bool("include-existing", false, "Do not skip sessions already on the calendar")
}
