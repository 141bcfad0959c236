package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var closeCmd = &cobra.Command{
	Use:   "close <trade-id> <exit-price>",
	Short: "Close a trade and settle the account",
	Long: `Close an open trade at the given exit price. The realized P/L is
computed from the trade's direction, leverage and entry price, the
trade is marked CLOSED, and the account ledger releases its capital
and applies the P/L.`,
	Args: cobra.ExactArgs(2),
	RunE: runClose,
}

var priceCmd = &cobra.Command{
	Use:   "price <trade-id> <current-price>",
	Short: "Mark a trade to a price and show its liquidation status",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrice,
}

var rmCmd = &cobra.Command{
	Use:   "rm <trade-id>",
	Short: "Delete a trade record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(rmCmd)
}

func runClose(cmd *cobra.Command, args []string) error {
	exit, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("exit price: %w", err)
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	t, err := app.ledger.SettleClose(app.svc, args[0], exit)
	if err != nil {
		return err
	}

	fmt.Printf("closed %s %s  exit=%.6f  pnl=%.2f (%.2f%%)\n",
		t.Symbol, t.Direction, t.ExitPrice, t.PnL, t.PnLPercent)
	return nil
}

func runPrice(cmd *cobra.Command, args []string) error {
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("current price: %w", err)
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	t, err := app.svc.UpdatePnL(args[0], price)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s  pnl=%.2f (%.2f%%)\n", t.Symbol, t.Direction, t.PnL, t.PnLPercent)

	warning, err := app.svc.LiquidationWarning(t, price)
	if err != nil {
		return err
	}
	fmt.Print(warning)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.svc.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted trade %s\n", args[0])
	return nil
}
