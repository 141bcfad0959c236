// Package decide generates trade suggestions: given a proposed entry,
// stop and target it derives a leverage and position size consistent
// with the Tony method and assembles a qualitative assessment. It is
// advisory only and never touches the trade or account stores.
package decide

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/tradebook/position"
)

// The suggestion engine sizes against a fixed 100-unit account and a
// 2% risk budget. The 2% here is deliberately tighter than the policy
// engine's 3% single-trade cap: auto-suggestions stay conservative.
const (
	totalCapital = 100.0
	riskPerTrade = 0.02
	maxSizeRatio = 0.5
)

// Decision is an ephemeral suggestion bundle; nothing persists it.
type Decision struct {
	Symbol    string
	Direction position.Direction

	Entry    float64
	Stop     float64
	Target   float64
	Leverage float64
	Size     float64

	RiskReward float64

	TrendNote      string
	LevelsNote     string
	RiskAssessment string
	Advice         string
}

const (
	trendNote  = "Confirm the prevailing trend first; trading with the dominant trend is what lifts the win rate."
	levelsNote = "Identify the key support and resistance levels; longs near support and shorts near resistance win more often."
)

// Generate builds a suggestion from the proposed levels. Leverage is
// tiered on the risk/reward ratio (>=3 gives 5x, >=2 gives 3x, else
// 2x, lower bounds inclusive) and size is the 2% risk budget divided
// by the leveraged price risk, clamped to half the account.
func Generate(symbol string, d position.Direction, entry, stop, target float64) Decision {
	dec := Decision{
		Symbol:    symbol,
		Direction: d,
		Entry:     entry,
		Stop:      stop,
		Target:    target,
	}

	dec.RiskReward = position.RiskReward(d, entry, stop, target)

	switch {
	case dec.RiskReward >= 3.0:
		dec.Leverage = 5.0
	case dec.RiskReward >= 2.0:
		dec.Leverage = 3.0
	default:
		dec.Leverage = 2.0
	}

	riskAmount := totalCapital * riskPerTrade
	if entry > 0 {
		priceRisk := d.Sign() * (entry - stop) / entry
		if priceRisk > 0 {
			size := riskAmount / (priceRisk * dec.Leverage)
			dec.Size = math.Min(size, totalCapital*maxSizeRatio)
		}
	}

	dec.TrendNote = trendNote
	dec.LevelsNote = levelsNote
	dec.RiskAssessment = assessRisk(dec.RiskReward)
	dec.Advice = buildAdvice(dec)

	return dec
}

func assessRisk(rr float64) string {
	switch {
	case rr < 1.5:
		return fmt.Sprintf("Risk/reward ratio is too low (%.2f); do not take this trade. The Tony method requires at least 2:1.", rr)
	case rr < 2.0:
		return fmt.Sprintf("Risk/reward ratio (%.2f) is marginal; look for a better setup or move the stop/target.", rr)
	case rr < 3.0:
		return fmt.Sprintf("Risk/reward ratio (%.2f) is good and meets the Tony method requirement.", rr)
	default:
		return fmt.Sprintf("Risk/reward ratio (%.2f) is excellent; this is a high-quality opportunity.", rr)
	}
}

func buildAdvice(dec Decision) string {
	var b strings.Builder

	b.WriteString("Tony method suggestion\n\n")
	b.WriteString("1. Capital management: risk at most 2% of total capital per trade\n")
	fmt.Fprintf(&b, "2. Suggested size: %.2f\n", dec.Size)
	fmt.Fprintf(&b, "3. Suggested leverage: %.1fx\n", dec.Leverage)
	fmt.Fprintf(&b, "4. Risk/reward ratio: %.2f\n\n", dec.RiskReward)

	if dec.RiskReward >= 2.0 {
		b.WriteString("PASS: this trade meets the Tony method risk/reward requirement\n")
	} else {
		b.WriteString("FAIL: this trade does not meet the Tony method risk/reward requirement\n")
	}

	b.WriteString("\nExecution notes:\n")
	b.WriteString("- set the stop loss and never move it\n")
	b.WriteString("- stay calm and follow the plan; ignore short-term noise\n")
	b.WriteString("- journal the trade and review what it taught you\n")
	b.WriteString("- be patient and take only the high-probability setups\n")

	return b.String()
}
