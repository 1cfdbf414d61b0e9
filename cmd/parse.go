package cmd

import (
	"fmt"

	"github.com/yogat3ch/30-day-scheduler/pkg/timeslot"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [header...]",
	Short: "Show the time window derived from column headers",
	Long:  `Debug helper: print the start, end and duration parsed from each signup column header.`,
	Example: `  30-day-scheduler parse "7 am EST" "11:30 pm - 12:15 am EST" "7 am PST | 8 am EST"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, header := range args {
			w, err := timeslot.Parse(header)
			if err != nil {
				fmt.Printf("%-30q  skipped (%v)\n", header, err)
				continue
			}
			fmt.Printf("%-30q  %s\n", header, w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
