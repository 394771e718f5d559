package cmd

import (
	"fmt"
	"os"

	"github.com/lukman83/widgetapps/internal/fred"
	"github.com/spf13/cobra"
)

var defaultRatesSeries = fred.SeriesMortgage30Y

var ratesCmd = &cobra.Command{
	Use:   "rates [series]",
	Short: "Fetch the current rate for a FRED series",
	Long:  "Fetch the latest observation for a FRED series, e.g. MORTGAGE30US (the default) or TERMCBAUTO48NS.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRates,
}

func init() {
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, args []string) error {
	c, err := buildClients()
	if err != nil {
		return err
	}
	defer c.widgets.Close()

	series := defaultRatesSeries
	if len(args) > 0 {
		series = args[0]
	}

	rate, err := c.rates.CurrentRate(cmd.Context(), series)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, " %s: %.2f%%  (as of %s)\n", rate.Series, rate.Percent, rate.Date)
	if rate.Stale {
		fmt.Fprintln(os.Stdout, " (served from a stale cache entry)")
	}
	return nil
}
