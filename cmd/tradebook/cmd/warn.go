package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var warnCmd = &cobra.Command{
	Use:   "warn <symbol>=<price> [<symbol>=<price> ...]",
	Short: "Show liquidation warnings for all open trades",
	Long: `Show the liquidation status of every open trade, given current prices
per symbol. Open trades whose symbol has no supplied price are
skipped.

Example:
  tradebook warn BTCUSDT=64200 ETHUSDT=3100`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWarn,
}

func init() {
	rootCmd.AddCommand(warnCmd)
}

func runWarn(cmd *cobra.Command, args []string) error {
	prices := make(map[string]float64, len(args))
	for _, arg := range args {
		sym, val, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected <symbol>=<price>, got %q", arg)
		}
		price, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("price for %s: %w", sym, err)
		}
		prices[sym] = price
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	warnings, err := app.svc.AllLiquidationWarnings(prices)
	if err != nil {
		return err
	}
	if warnings == "" {
		fmt.Println("no open trades with a supplied price")
		return nil
	}
	fmt.Print(warnings)
	return nil
}
