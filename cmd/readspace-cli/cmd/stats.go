package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsDate string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading statistics",
	Long: `Show overall reading statistics, or the per-file open counts for a
single day.

Examples:
  readspace-cli stats
  readspace-cli stats --date 2026-09-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsDate != "" {
			return printDay(statsDate)
		}

		stats := ws.Stats()
		fmt.Printf("Files:            %d\n", stats.FileCount)
		fmt.Printf("Total opens:      %d\n", stats.TotalOpens)
		fmt.Printf("Active days:      %d\n", stats.ActiveDays)
		fmt.Printf("Average progress: %d%%\n", stats.AverageProgress)
		return nil
	},
}

func printDay(date string) error {
	totals := ws.Statistics.FilesActiveOn(date)
	if activity != nil {
		if indexed, err := activity.TotalsFor(date); err == nil && len(indexed) > 0 {
			totals = indexed
		}
	}
	if len(totals) == 0 {
		fmt.Printf("No activity on %s\n", date)
		return nil
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s\t%d opens\n", name, totals[name])
	}
	return nil
}

var daysFrom, daysTo string

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List days with reading activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		if activity != nil && daysFrom != "" && daysTo != "" {
			totals, err := activity.DayTotals(daysFrom, daysTo)
			if err != nil {
				return err
			}
			for _, t := range totals {
				fmt.Printf("%s\t%d opens\n", t.Date, t.Opens)
			}
			return nil
		}

		for _, date := range ws.Statistics.Dates() {
			if daysFrom != "" && date < daysFrom {
				continue
			}
			if daysTo != "" && date > daysTo {
				continue
			}
			opens := 0
			for _, count := range ws.Statistics.FilesActiveOn(date) {
				opens += count
			}
			fmt.Printf("%s\t%d opens\n", date, opens)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsDate, "date", "", "show per-file opens for one date (YYYY-MM-DD)")
	daysCmd.Flags().StringVar(&daysFrom, "from", "", "start date (YYYY-MM-DD)")
	daysCmd.Flags().StringVar(&daysTo, "to", "", "end date (YYYY-MM-DD)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(daysCmd)
}
