package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/position"
	"github.com/rustyeddy/tradebook/trade"
)

var openCmd = &cobra.Command{
	Use:   "open <symbol> <LONG|SHORT> <size> <leverage> <entry-price>",
	Short: "Open a new position",
	Long: `Open a new position. The account ledger reserves the capital first;
if the position fails the funds check or the Tony method rules, no
trade is recorded.

Example:
  tradebook open BTCUSDT LONG 20 5 65000 --stop 63000 --target 70000`,
	Args: cobra.ExactArgs(5),
	RunE: runOpen,
}

var planCmd = &cobra.Command{
	Use:   "plan <symbol> <LONG|SHORT> <size> <leverage> <entry-price>",
	Short: "Record a planned trade without committing capital",
	Args:  cobra.ExactArgs(5),
	RunE:  runPlan,
}

var (
	openStop   float64
	openTarget float64
	openReason string
)

func init() {
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(planCmd)

	for _, c := range []*cobra.Command{openCmd, planCmd} {
		c.Flags().Float64Var(&openStop, "stop", 0, "stop-loss price")
		c.Flags().Float64Var(&openTarget, "target", 0, "take-profit price")
		c.Flags().StringVar(&openReason, "reason", "", "why this trade")
	}
}

func parseTradeArgs(args []string) (trade.Trade, error) {
	dir, err := position.ParseDirection(args[1])
	if err != nil {
		return trade.Trade{}, err
	}
	size, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("size: %w", err)
	}
	lev, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("leverage: %w", err)
	}
	entry, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("entry price: %w", err)
	}

	return trade.Trade{
		Symbol:       args[0],
		Direction:    dir,
		PositionSize: size,
		Leverage:     lev,
		EntryPrice:   entry,
		StopLoss:     openStop,
		TakeProfit:   openTarget,
		Reason:       openReason,
	}, nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	t, err := parseTradeArgs(args)
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	// Reserve capital first; only a compliant position becomes a trade.
	if err := app.ledger.OpenPosition(t); err != nil {
		return err
	}

	created, err := app.svc.Create(t)
	if err != nil {
		return fmt.Errorf("create trade: %w", err)
	}

	fmt.Printf("opened %s %s  size=%.2f  leverage=%.1fx  entry=%.6f\n",
		created.Symbol, created.Direction, created.PositionSize, created.Leverage, created.EntryPrice)
	fmt.Printf("trade id: %s\n", created.ID)
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	t, err := parseTradeArgs(args)
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	created, err := app.svc.Plan(t)
	if err != nil {
		return fmt.Errorf("plan trade: %w", err)
	}

	fmt.Printf("planned %s %s  size=%.2f  leverage=%.1fx  entry=%.6f\n",
		created.Symbol, created.Direction, created.PositionSize, created.Leverage, created.EntryPrice)
	fmt.Printf("trade id: %s\n", created.ID)
	return nil
}
