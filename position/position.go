// Package position holds the pure math for leveraged positions:
// P/L, liquidation price, distance to liquidation and risk/reward.
// All functions are stateless; callers supply every input.
package position

import "errors"

var (
	ErrBadEntry    = errors.New("entry price must be positive")
	ErrBadLeverage = errors.New("leverage must be positive")
)

// Direction of a position. The numeric value is the sign applied to
// price movement, so one formula covers both sides.
type Direction int

const (
	Long  Direction = 1
	Short Direction = -1
)

func (d Direction) String() string {
	if d == Short {
		return "SHORT"
	}
	return "LONG"
}

// ParseDirection accepts the wire form ("LONG"/"SHORT").
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "LONG":
		return Long, nil
	case "SHORT":
		return Short, nil
	}
	return 0, errors.New("direction must be LONG or SHORT")
}

// Sign is +1 for longs, -1 for shorts.
func (d Direction) Sign() float64 { return float64(d) }

// MarshalText persists the direction as "LONG"/"SHORT" rather than
// its sign value.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PnL is the account-currency profit or loss of a position of size
// committed capital at the given leverage, marked at current.
func PnL(d Direction, size, leverage, entry, current float64) (float64, error) {
	if entry <= 0 {
		return 0, ErrBadEntry
	}
	return size * leverage * d.Sign() * (current - entry) / entry, nil
}

// PnLPercent is the return on committed capital, scaled by leverage.
// It does not depend on position size.
func PnLPercent(d Direction, leverage, entry, current float64) (float64, error) {
	if entry <= 0 {
		return 0, ErrBadEntry
	}
	return d.Sign() * (current - entry) / entry * leverage * 100, nil
}

// LiquidationPrice is the price at which the loss equals 100% of the
// committed capital. Leverage 1 on a long liquidates at zero: a
// spot-equivalent position has no margin cushion.
func LiquidationPrice(d Direction, entry, leverage float64) (float64, error) {
	if leverage <= 0 {
		return 0, ErrBadLeverage
	}
	return entry * (1 - d.Sign()/leverage), nil
}

// DistanceToLiquidation is the percentage gap between current price
// and the liquidation price. Positive means margin remains; zero or
// negative means the position is gone.
func DistanceToLiquidation(d Direction, entry, leverage, current float64) (float64, error) {
	liq, err := LiquidationPrice(d, entry, leverage)
	if err != nil {
		return 0, err
	}
	return d.Sign() * (current - liq) / liq * 100, nil
}

// Zone classifies a distance-to-liquidation value.
type Zone int

const (
	Liquidated Zone = iota
	NearLiquidation
	Safe
)

// NearThresholdPct is the distance below which a position counts as
// near liquidation.
const NearThresholdPct = 20.0

// Classify maps a distance percentage onto its zone. The three zones
// partition the whole real line.
func Classify(distancePct float64) Zone {
	switch {
	case distancePct <= 0:
		return Liquidated
	case distancePct < NearThresholdPct:
		return NearLiquidation
	default:
		return Safe
	}
}

// RiskReward is the ratio of the reward fraction (entry to target) to
// the risk fraction (entry to stop), both relative to entry. A zero
// risk fraction yields 0: the caller must treat that as "undefined,
// avoid", not as a tradable setup.
func RiskReward(d Direction, entry, stop, target float64) float64 {
	if entry == 0 {
		return 0
	}
	risk := d.Sign() * (entry - stop) / entry
	reward := d.Sign() * (target - entry) / entry
	if risk == 0 {
		return 0
	}
	return reward / risk
}
