package cmd

import (
	"fmt"

	"github.com/yogat3ch/30-day-scheduler/pkg/config"
	"github.com/yogat3ch/30-day-scheduler/pkg/tui"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage 30-day-scheduler configuration",
	Long:  "View or edit your local configuration settings (spreadsheet, calendar and file locations).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if show, _ := cmd.Flags().GetBool("show"); show {
			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to serialize config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		}

		changed := false
		for flag, target := range map[string]*string{
			"spreadsheet": &cfg.Spreadsheet.ID,
			"source":      &cfg.Spreadsheet.Source,
			"workbook":    &cfg.Spreadsheet.WorkbookPath,
			"calendar":    &cfg.Calendar.ID,
			"timezone":    &cfg.Calendar.TimeZone,
			"template":    &cfg.Files.Template,
			"ledger":      &cfg.Files.Ledger,
		} {
			if cmd.Flags().Changed(flag) {
				*target, _ = cmd.Flags().GetString(flag)
				changed = true
			}
		}
		if cmd.Flags().Changed("lookback") {
			cfg.Calendar.LookbackDays, _ = cmd.Flags().GetInt("lookback")
			changed = true
		}

		// If no flags are given, launch the interactive TUI flow
		if !changed {
			return tui.RunConfigTUI()
		}

		if err := cfg.Validate(); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		if err := config.Save(configPath, cfg); err != nil {
			return err
		}

		fmt.Println("✅ Configuration saved.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("show", false, "Print the current configuration")
	configCmd.Flags().String("spreadsheet", "", "Spreadsheet ID (or publish ID for the html source)")
	configCmd.Flags().String("source", "", "Where to read the signup sheet: google, xlsx or html")
	configCmd.Flags().String("workbook", "", "Path to a local .xlsx export (xlsx source)")
	configCmd.Flags().String("calendar", "", "Calendar ID to create events on")
	configCmd.Flags().String("timezone", "", "IANA time zone of the signup sheet")
	configCmd.Flags().String("template", "", "Path to the JSONC event template")
	configCmd.Flags().String("ledger", "", "Path to the created-events CSV")
	configCmd.Flags().Int("lookback", 0, "Days to look back for existing events")
}
