package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lukman83/widgetapps/internal/analytics"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate analytics events into a usage report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().String("from", "", "Start day, YYYY-MM-DD (default: 6 days ago)")
	reportCmd.Flags().String("to", "", "End day, YYYY-MM-DD (default: today)")
	reportCmd.Flags().String("format", "table", "Output format: table or json")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if to == "" {
		to = now.Format("2006-01-02")
	}
	if from == "" {
		from = now.AddDate(0, 0, -6).Format("2006-01-02")
	}

	rep, err := analytics.Aggregate(cfg.AnalyticsDir, from, to)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "table":
		printReport(rep)
		return nil
	default:
		return fmt.Errorf("unknown format %q (use table or json)", format)
	}
}

func printReport(rep *analytics.Report) {
	fmt.Fprintf(os.Stdout, "Events %s to %s: %d total, %d errors (%.1f%%)\n",
		rep.From, rep.To, rep.Total, rep.Errors, rep.ErrorRate*100)

	if len(rep.Tools) > 0 {
		fmt.Fprintln(os.Stdout)
		fmt.Fprintf(os.Stdout, " %-8s %-20s %7s %7s %8s %8s\n", "APP", "TOOL", "COUNT", "ERRORS", "P50(ms)", "P95(ms)")
		for _, t := range rep.Tools {
			fmt.Fprintf(os.Stdout, " %-8s %-20s %7d %7d %8d %8d\n", t.App, t.Tool, t.Count, t.Errors, t.P50MS, t.P95MS)
		}
	}

	if len(rep.Days) > 0 {
		fmt.Fprintln(os.Stdout)
		for _, d := range rep.Days {
			fmt.Fprintf(os.Stdout, " %s  %5d events  %4d errors\n", d.Day, d.Total, d.Errors)
		}
	}
}
