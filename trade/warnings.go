package trade

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradebook/position"
)

// LiquidationWarning renders the liquidation status of a trade at
// currentPrice as one of three fixed templates.
func (s *Service) LiquidationWarning(t Trade, currentPrice float64) (string, error) {
	liq, err := position.LiquidationPrice(t.Direction, t.EntryPrice, t.Leverage)
	if err != nil {
		return "", fmt.Errorf("liquidation warning %q: %w", t.ID, err)
	}
	dist, err := position.DistanceToLiquidation(t.Direction, t.EntryPrice, t.Leverage, currentPrice)
	if err != nil {
		return "", fmt.Errorf("liquidation warning %q: %w", t.ID, err)
	}

	var b strings.Builder
	switch position.Classify(dist) {
	case position.Liquidated:
		b.WriteString("ALERT: position has been liquidated!\n")
		fmt.Fprintf(&b, "liquidation price: %.6f\n", liq)
		fmt.Fprintf(&b, "current price: %.6f\n", currentPrice)
	case position.NearLiquidation:
		b.WriteString("WARNING: position is close to liquidation!\n")
		fmt.Fprintf(&b, "liquidation price: %.6f\n", liq)
		fmt.Fprintf(&b, "current price: %.6f\n", currentPrice)
		fmt.Fprintf(&b, "distance to liquidation: %.2f%%\n", dist)
		b.WriteString("Tony method reminder: when in doubt close the position, or at least cut it in half!\n")
	default:
		b.WriteString("position is safe\n")
		fmt.Fprintf(&b, "liquidation price: %.6f\n", liq)
		fmt.Fprintf(&b, "current price: %.6f\n", currentPrice)
		fmt.Fprintf(&b, "safety margin: %.2f%%\n", dist)
	}
	return b.String(), nil
}

// AllLiquidationWarnings renders the warning for every open trade
// whose symbol has a price in prices. Open trades without a supplied
// price are skipped; with no open trades the result is empty.
func (s *Service) AllLiquidationWarnings(prices map[string]float64) (string, error) {
	open, err := s.store.ByStatus(Open)
	if err != nil {
		return "", fmt.Errorf("liquidation warnings: %w", err)
	}

	var b strings.Builder
	for _, t := range open {
		price, ok := prices[t.Symbol]
		if !ok {
			continue
		}
		w, err := s.LiquidationWarning(t, price)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "[%s %s]\n%s\n", t.Symbol, t.ID, w)
	}
	return b.String(), nil
}
