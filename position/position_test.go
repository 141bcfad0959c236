package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPnL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dir      Direction
		size     float64
		leverage float64
		entry    float64
		current  float64
		want     float64
	}{
		{"long_profit", Long, 20, 5, 100, 110, 10},
		{"long_loss", Long, 20, 5, 100, 95, -5},
		{"short_profit", Short, 20, 5, 100, 90, 10},
		{"short_loss", Short, 20, 5, 100, 110, -10},
		{"no_movement_long", Long, 50, 10, 123.45, 123.45, 0},
		{"no_movement_short", Short, 50, 10, 123.45, 123.45, 0},
		{"leverage_scales", Long, 10, 2, 100, 110, 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := PnL(tt.dir, tt.size, tt.leverage, tt.entry, tt.current)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPnL_LongShortSymmetry(t *testing.T) {
	t.Parallel()

	long, err := PnL(Long, 37, 4, 250, 260)
	require.NoError(t, err)
	short, err := PnL(Short, 37, 4, 250, 260)
	require.NoError(t, err)

	assert.InDelta(t, -short, long, 1e-9)
}

func TestPnL_BadEntry(t *testing.T) {
	t.Parallel()

	_, err := PnL(Long, 10, 2, 0, 100)
	assert.ErrorIs(t, err, ErrBadEntry)

	_, err = PnL(Short, 10, 2, -5, 100)
	assert.ErrorIs(t, err, ErrBadEntry)

	_, err = PnLPercent(Long, 2, 0, 100)
	assert.ErrorIs(t, err, ErrBadEntry)
}

func TestPnLPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dir      Direction
		leverage float64
		entry    float64
		current  float64
		want     float64
	}{
		{"long_up_10pct_5x", Long, 5, 100, 110, 50},
		{"short_down_10pct_5x", Short, 5, 100, 90, 50},
		{"long_down", Long, 2, 100, 95, -10},
		{"size_independent", Long, 3, 200, 220, 30},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := PnLPercent(tt.dir, tt.leverage, tt.entry, tt.current)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLiquidationPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dir      Direction
		entry    float64
		leverage float64
		want     float64
	}{
		{"long_4x", Long, 100, 4, 75},
		{"short_4x", Short, 100, 4, 125},
		{"long_10x", Long, 50000, 10, 45000},
		{"long_1x_spot_full_loss_at_zero", Long, 100, 1, 0},
		{"short_1x", Short, 100, 1, 200},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := LiquidationPrice(tt.dir, tt.entry, tt.leverage)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLiquidationPrice_BadLeverage(t *testing.T) {
	t.Parallel()

	_, err := LiquidationPrice(Long, 100, 0)
	assert.ErrorIs(t, err, ErrBadLeverage)

	_, err = DistanceToLiquidation(Long, 100, -2, 90)
	assert.ErrorIs(t, err, ErrBadLeverage)
}

func TestDistanceToLiquidation(t *testing.T) {
	t.Parallel()

	// LONG entry=100 leverage=4 liquidates at 75; at 80 the gap is
	// (80-75)/75 = 6.67%.
	got, err := DistanceToLiquidation(Long, 100, 4, 80)
	require.NoError(t, err)
	assert.InDelta(t, 6.6667, got, 1e-3)
	assert.Equal(t, NearLiquidation, Classify(got))

	// Marking exactly at the liquidation price gives distance zero.
	for _, dir := range []Direction{Long, Short} {
		liq, err := LiquidationPrice(dir, 100, 4)
		require.NoError(t, err)
		dist, err := DistanceToLiquidation(dir, 100, 4, liq)
		require.NoError(t, err)
		assert.InDelta(t, 0, dist, 1e-9)
		assert.Equal(t, Liquidated, Classify(dist))
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dist float64
		want Zone
	}{
		{"deep_under", -50, Liquidated},
		{"boundary_zero", 0, Liquidated},
		{"just_above_zero", 0.01, NearLiquidation},
		{"near_upper_bound", 19.99, NearLiquidation},
		{"exactly_twenty", 20, Safe},
		{"far_away", 80, Safe},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.dist))
		})
	}
}

func TestRiskReward(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dir    Direction
		entry  float64
		stop   float64
		target float64
		want   float64
	}{
		{"long_2_to_1", Long, 100, 95, 110, 2},
		{"short_2_to_1", Short, 100, 105, 90, 2},
		{"long_3_to_1", Long, 100, 90, 130, 3},
		{"zero_risk_sentinel", Long, 100, 100, 110, 0},
		{"zero_entry_sentinel", Long, 0, 95, 110, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := RiskReward(tt.dir, tt.entry, tt.stop, tt.target)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	long, err := ParseDirection("LONG")
	require.NoError(t, err)
	assert.Equal(t, Long, long)

	short, err := ParseDirection("SHORT")
	require.NoError(t, err)
	assert.Equal(t, Short, short)

	_, err = ParseDirection("SIDEWAYS")
	assert.Error(t, err)
}
