// Package policy evaluates prospective positions against the fixed
// capital-management rules of the Tony method: cap any single position
// at 30% of capital, keep at least 67% of capital in reserve, risk no
// more than 3% per trade and demand at least 2:1 reward to risk.
package policy

import (
	"fmt"
	"strings"
)

type Policy struct {
	// Hard position limits
	MaxPositionRatio float64 // 0.30
	ReserveRatio     float64 // 0.67

	// Per-trade risk limits
	MaxRiskPct    float64 // 0.03
	MinRiskReward float64 // 2.0
}

// Default returns the Tony method parameters.
func Default() Policy {
	return Policy{
		MaxPositionRatio: 0.30,
		ReserveRatio:     0.67,
		MaxRiskPct:       0.03,
		MinRiskReward:    2.0,
	}
}

// MaxRiskPerTrade is the absolute risk budget for one trade.
func (p Policy) MaxRiskPerTrade(totalBalance float64) float64 {
	return totalBalance * p.MaxRiskPct
}

// Snapshot is the slice of account state the rules need.
type Snapshot struct {
	TotalBalance float64
	UsedBalance  float64
}

type Violation struct {
	Code string
	Msg  string
}

type Decision struct {
	Compliant  bool
	Violations []Violation
	Advice     string
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Compliant = false
}

const (
	warnPositionCap = "violates the Tony method: a single position must not exceed 30% of total capital; this position is too large."
	warnReserve     = "violates the Tony method: keep at least 67% of capital in reserve; too much capital is already deployed."

	compliantAdvice = `meets the Tony method capital rules.
Tony method reminders:
- never lose big: keep every loss as small as possible
- risk a little to win a lot
- hold your main reserve back for the high-conviction setups`
)

// Evaluate checks a proposed position size against the account
// snapshot. Both rules are evaluated independently and both caps are
// inclusive: a position of exactly 30% passes. The advice text is
// deterministic for a given input.
func Evaluate(p Policy, acct Snapshot, positionSize float64) Decision {
	d := Decision{Compliant: true}

	if acct.TotalBalance <= 0 {
		if positionSize > 0 {
			d.add("POSITION_TOO_LARGE", warnPositionCap)
		}
	} else {
		// Compare ratios rather than size against total*ratio: the cap
		// is inclusive, and a position of exactly 30% must pass even
		// when the product rounds below the nominal boundary.
		if positionSize/acct.TotalBalance > p.MaxPositionRatio {
			d.add("POSITION_TOO_LARGE", warnPositionCap)
		}

		usage := (acct.UsedBalance + positionSize) / acct.TotalBalance
		if usage > 1-p.ReserveRatio {
			d.add("RESERVE_TOO_LOW", warnReserve)
		}
	}

	if d.Compliant {
		d.Advice = compliantAdvice
	} else {
		var b strings.Builder
		for _, v := range d.Violations {
			fmt.Fprintf(&b, "warning: %s\n", v.Msg)
		}
		d.Advice = strings.TrimRight(b.String(), "\n")
	}
	return d
}
