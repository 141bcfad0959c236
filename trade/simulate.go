package trade

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradebook/position"
)

// Simulation previews the outcome of a hypothetical trade at a given
// price. Nothing is persisted and the account is never touched.
type Simulation struct {
	Symbol    string             `json:"symbol"`
	Direction position.Direction `json:"direction"`

	Leverage     float64 `json:"leverage"`
	PositionSize float64 `json:"positionSize"`
	EntryPrice   float64 `json:"entryPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	StopLoss     float64 `json:"stopLoss"`
	TakeProfit   float64 `json:"takeProfit"`

	// Computed
	PnL        float64   `json:"pnl"`
	PnLPercent float64   `json:"pnlPercentage"`
	RiskReward float64   `json:"riskRewardRatio"`
	StopHit    bool      `json:"stopLossTriggered"`
	TargetHit  bool      `json:"takeProfitTriggered"`
	Time       time.Time `json:"simulationTime"`
}

// Simulate fills in the computed fields of a simulation. Trigger
// checks use level-crossing semantics: a long's stop fires at or
// below the stop price, its target at or above the target price;
// shorts are mirrored.
func Simulate(s Simulation) (Simulation, error) {
	pnl, err := position.PnL(s.Direction, s.PositionSize, s.Leverage, s.EntryPrice, s.CurrentPrice)
	if err != nil {
		return Simulation{}, fmt.Errorf("simulate: %w", err)
	}
	pct, err := position.PnLPercent(s.Direction, s.Leverage, s.EntryPrice, s.CurrentPrice)
	if err != nil {
		return Simulation{}, fmt.Errorf("simulate: %w", err)
	}

	s.PnL = pnl
	s.PnLPercent = pct
	s.RiskReward = position.RiskReward(s.Direction, s.EntryPrice, s.StopLoss, s.TakeProfit)
	s.StopHit = hitStop(s)
	s.TargetHit = hitTarget(s)
	s.Time = time.Now()
	return s, nil
}

func hitStop(s Simulation) bool {
	if s.Direction == position.Long {
		return s.CurrentPrice <= s.StopLoss
	}
	return s.CurrentPrice >= s.StopLoss
}

func hitTarget(s Simulation) bool {
	if s.Direction == position.Long {
		return s.CurrentPrice >= s.TakeProfit
	}
	return s.CurrentPrice <= s.TakeProfit
}
