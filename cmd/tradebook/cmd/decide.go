package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/decide"
	"github.com/rustyeddy/tradebook/position"
	"github.com/rustyeddy/tradebook/trade"
)

var decideCmd = &cobra.Command{
	Use:   "decide <symbol> <LONG|SHORT> <entry> <stop> <target>",
	Short: "Generate a position-sizing suggestion for a setup",
	Long: `Generate a trading suggestion for a proposed entry, stop and target.
The leverage and position size are derived from the risk/reward ratio
and a fixed 2% risk budget; nothing is recorded.

Example:
  tradebook decide BTCUSDT LONG 100 95 110`,
	Args: cobra.ExactArgs(5),
	RunE: runDecide,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <symbol> <LONG|SHORT> <size> <leverage> <entry> <current>",
	Short: "Preview the outcome of a hypothetical trade",
	Args:  cobra.ExactArgs(6),
	RunE:  runSimulate,
}

var (
	simStop   float64
	simTarget float64
)

func init() {
	rootCmd.AddCommand(decideCmd)
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Float64Var(&simStop, "stop", 0, "stop-loss price")
	simulateCmd.Flags().Float64Var(&simTarget, "target", 0, "take-profit price")
}

func runDecide(cmd *cobra.Command, args []string) error {
	dir, err := position.ParseDirection(args[1])
	if err != nil {
		return err
	}
	var nums [3]float64
	for i, name := range []string{"entry", "stop", "target"} {
		nums[i], err = strconv.ParseFloat(args[2+i], 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	d := decide.Generate(args[0], dir, nums[0], nums[1], nums[2])

	fmt.Printf("%s %s  entry=%.6f stop=%.6f target=%.6f\n",
		d.Symbol, d.Direction, d.Entry, d.Stop, d.Target)
	fmt.Printf("suggested leverage: %.1fx\n", d.Leverage)
	fmt.Printf("suggested size:     %.2f\n", d.Size)
	fmt.Printf("risk/reward:        %.2f\n\n", d.RiskReward)
	fmt.Println(d.TrendNote)
	fmt.Println(d.LevelsNote)
	fmt.Println(d.RiskAssessment)
	fmt.Println()
	fmt.Println(d.Advice)
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	dir, err := position.ParseDirection(args[1])
	if err != nil {
		return err
	}
	var nums [4]float64
	for i, name := range []string{"size", "leverage", "entry", "current"} {
		nums[i], err = strconv.ParseFloat(args[2+i], 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	s, err := trade.Simulate(trade.Simulation{
		Symbol:       args[0],
		Direction:    dir,
		PositionSize: nums[0],
		Leverage:     nums[1],
		EntryPrice:   nums[2],
		CurrentPrice: nums[3],
		StopLoss:     simStop,
		TakeProfit:   simTarget,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s %s  entry=%.6f current=%.6f\n", s.Symbol, s.Direction, s.EntryPrice, s.CurrentPrice)
	fmt.Printf("pnl:         %.2f (%.2f%%)\n", s.PnL, s.PnLPercent)
	fmt.Printf("risk/reward: %.2f\n", s.RiskReward)
	if s.StopHit {
		fmt.Println("stop loss would have triggered")
	}
	if s.TargetHit {
		fmt.Println("take profit would have triggered")
	}
	return nil
}
