package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the account balance and trade statistics",
	Args:  cobra.NoArgs,
	RunE:  runBalance,
}

var balanceResetCmd = &cobra.Command{
	Use:   "reset <initial-balance>",
	Short: "Reset the account to a fresh balance",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalanceReset,
}

var balanceAdviceCmd = &cobra.Command{
	Use:   "advice <position-size>",
	Short: "Check a position size against the Tony method rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalanceAdvice,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.AddCommand(balanceResetCmd)
	balanceCmd.AddCommand(balanceAdviceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	b, err := app.ledger.Balance()
	if err != nil {
		return err
	}

	fmt.Printf("total balance:     %.2f\n", b.TotalBalance)
	fmt.Printf("available balance: %.2f\n", b.AvailableBalance)
	fmt.Printf("used balance:      %.2f\n", b.UsedBalance)
	fmt.Printf("total P/L:         %.2f (%.2f%%)\n", b.TotalPnL, b.TotalPnLPercent)
	fmt.Printf("trades:            %d (%d won, %d lost, win rate %.1f%%)\n",
		b.TotalTrades, b.WinTrades, b.LossTrades, b.WinRate)
	fmt.Printf("max risk/trade:    %.2f\n", b.MaxRiskPerTrade)
	fmt.Printf("max position:      %.0f%% of capital\n", b.MaxPositionRatio*100)
	fmt.Printf("reserve floor:     %.0f%% of capital\n", b.ReserveRatio*100)
	return nil
}

func runBalanceReset(cmd *cobra.Command, args []string) error {
	initial, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("initial balance: %w", err)
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.ledger.Reset(initial); err != nil {
		return err
	}
	fmt.Printf("account reset to %.2f\n", initial)
	return nil
}

func runBalanceAdvice(cmd *cobra.Command, args []string) error {
	size, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("position size: %w", err)
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	d, err := app.ledger.Advise(size)
	if err != nil {
		return err
	}
	fmt.Println(d.Advice)
	return nil
}
