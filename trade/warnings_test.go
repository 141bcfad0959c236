package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/position"
)

func TestLiquidationWarning(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())

	// LONG entry=100 leverage=4 liquidates at 75.
	tr := Trade{
		Symbol:     "BTCUSDT",
		Direction:  position.Long,
		Leverage:   4,
		EntryPrice: 100,
	}

	tests := []struct {
		name         string
		currentPrice float64
		wantFragment string
	}{
		{"liquidated", 70, "has been liquidated"},
		{"at_boundary_is_liquidated", 75, "has been liquidated"},
		{"near", 80, "close to liquidation"},
		{"safe", 100, "position is safe"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := svc.LiquidationWarning(tr, tt.currentPrice)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantFragment)
			assert.Contains(t, got, "75.000000")
		})
	}
}

func TestLiquidationWarning_NearShowsDistance(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	tr := Trade{Symbol: "BTCUSDT", Direction: position.Long, Leverage: 4, EntryPrice: 100}

	got, err := svc.LiquidationWarning(tr, 80)
	require.NoError(t, err)
	assert.Contains(t, got, "6.67%")
	assert.Contains(t, got, "cut it in half")
}

func TestAllLiquidationWarnings(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := NewService(store)

	a := newTrade() // BTCUSDT 5x, liquidates at 80
	_, err := svc.Create(a)
	require.NoError(t, err)

	eth := newTrade()
	eth.Symbol = "ETHUSDT"
	_, err = svc.Create(eth)
	require.NoError(t, err)

	out, err := svc.AllLiquidationWarnings(map[string]float64{
		"BTCUSDT": 82, // near liquidation
		"ETHUSDT": 100,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "BTCUSDT")
	assert.Contains(t, out, "ETHUSDT")
	assert.Contains(t, out, "close to liquidation")
	assert.Contains(t, out, "position is safe")
}

func TestAllLiquidationWarnings_NoOpenTrades(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	out, err := svc.AllLiquidationWarnings(map[string]float64{"BTCUSDT": 100})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAllLiquidationWarnings_SkipsUnpricedSymbols(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	_, err := svc.Create(newTrade())
	require.NoError(t, err)

	out, err := svc.AllLiquidationWarnings(map[string]float64{"ETHUSDT": 100})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSimulate(t *testing.T) {
	t.Parallel()

	s, err := Simulate(Simulation{
		Symbol:       "BTCUSDT",
		Direction:    position.Long,
		PositionSize: 20,
		Leverage:     5,
		EntryPrice:   100,
		CurrentPrice: 110,
		StopLoss:     95,
		TakeProfit:   110,
	})
	require.NoError(t, err)

	assert.InDelta(t, 10.0, s.PnL, 1e-9)
	assert.InDelta(t, 50.0, s.PnLPercent, 1e-9)
	assert.InDelta(t, 2.0, s.RiskReward, 1e-9)
	assert.False(t, s.StopHit)
	assert.True(t, s.TargetHit)
	assert.False(t, s.Time.IsZero())
}

func TestSimulate_ShortTriggers(t *testing.T) {
	t.Parallel()

	s, err := Simulate(Simulation{
		Direction:    position.Short,
		PositionSize: 10,
		Leverage:     2,
		EntryPrice:   100,
		CurrentPrice: 106,
		StopLoss:     105,
		TakeProfit:   90,
	})
	require.NoError(t, err)

	assert.True(t, s.StopHit)
	assert.False(t, s.TargetHit)
	assert.InDelta(t, -1.2, s.PnL, 1e-9)
}

func TestSimulate_BadEntry(t *testing.T) {
	t.Parallel()

	_, err := Simulate(Simulation{Direction: position.Long, EntryPrice: 0, CurrentPrice: 10})
	assert.ErrorIs(t, err, position.ErrBadEntry)
}
