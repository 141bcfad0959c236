package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/trade"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listStatus string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (PLANNED, OPEN, CLOSED)")
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	var trades []trade.Trade
	if listStatus != "" {
		trades, err = app.svc.ListByStatus(trade.Status(listStatus))
	} else {
		trades, err = app.svc.List()
	}
	if err != nil {
		return err
	}

	if len(trades) == 0 {
		fmt.Println("no trades")
		return nil
	}

	for _, t := range trades {
		fmt.Printf("%s  %-10s %-5s %-7s size=%-8.2f lev=%-5.1f entry=%-12.6f pnl=%.2f (%.2f%%)\n",
			t.ID, t.Symbol, t.Direction, t.Status, t.PositionSize, t.Leverage, t.EntryPrice,
			t.PnL, t.PnLPercent)
	}
	return nil
}
