package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/yogat3ch/30-day-scheduler/pkg/config"
	"github.com/yogat3ch/30-day-scheduler/pkg/logging"
	"github.com/yogat3ch/30-day-scheduler/pkg/tui"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "30-day-scheduler",
	Short: "Turn the 30-day challenge signup sheet into calendar events",
	Long: `30-day-scheduler reads the guided-session signup sheet, matches each name against the
teacher contact table and creates one calendar invite per session. Runs are dry runs unless
--run is given, and every created event is logged so it can be deleted again.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		tui.ConfigPath = configPath
		logger := logging.New(os.Stderr, verbose)
		cmd.SetContext(logging.ContextWithLogger(cmd.Context(), logger))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.30-day-scheduler.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func loadConfig() (*config.AppConfig, error) {
	return config.Load(configPath)
}
