package account

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/policy"
	"github.com/rustyeddy/tradebook/position"
	"github.com/rustyeddy/tradebook/trade"
)

type memAcctStore struct {
	balance *Balance
}

func (m *memAcctStore) Read() (Balance, error) {
	if m.balance == nil {
		return Balance{}, ErrNoAccount
	}
	return *m.balance, nil
}

func (m *memAcctStore) Write(b Balance) error {
	m.balance = &b
	return nil
}

type memTradeStore struct {
	trades []trade.Trade
}

func (m *memTradeStore) Save(t trade.Trade) (trade.Trade, error) {
	m.trades = append(m.trades, t)
	return t, nil
}

func (m *memTradeStore) Get(id string) (trade.Trade, error) {
	for _, t := range m.trades {
		if t.ID == id {
			return t, nil
		}
	}
	return trade.Trade{}, fmt.Errorf("trade %q: %w", id, trade.ErrNotFound)
}

func (m *memTradeStore) All() ([]trade.Trade, error) { return m.trades, nil }

func (m *memTradeStore) ByStatus(status trade.Status) ([]trade.Trade, error) {
	var out []trade.Trade
	for _, t := range m.trades {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTradeStore) Update(t trade.Trade) (trade.Trade, error) {
	for i := range m.trades {
		if m.trades[i].ID == t.ID {
			m.trades[i] = t
			return t, nil
		}
	}
	return trade.Trade{}, fmt.Errorf("trade %q: %w", t.ID, trade.ErrNotFound)
}

func (m *memTradeStore) Delete(id string) error {
	for i := range m.trades {
		if m.trades[i].ID == id {
			m.trades = append(m.trades[:i], m.trades[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("trade %q: %w", id, trade.ErrNotFound)
}

func newLedger() (*Ledger, *memAcctStore, *memTradeStore) {
	accts := &memAcctStore{}
	trades := &memTradeStore{}
	return NewLedger(accts, trades, policy.Default()), accts, trades
}

func sampleTrade() trade.Trade {
	return trade.Trade{
		ID:           "T1",
		Symbol:       "BTCUSDT",
		Direction:    position.Long,
		PositionSize: 20,
		Leverage:     5,
		EntryPrice:   100,
		Status:       trade.Open,
	}
}

func TestBalance_CreatesDefaultAccount(t *testing.T) {
	t.Parallel()

	l, accts, _ := newLedger()
	b, err := l.Balance()
	require.NoError(t, err)

	assert.InDelta(t, 100.0, b.TotalBalance, 1e-9)
	assert.InDelta(t, 100.0, b.AvailableBalance, 1e-9)
	assert.InDelta(t, 100.0, b.InitialBalance, 1e-9)
	assert.InDelta(t, 3.0, b.MaxRiskPerTrade, 1e-9)
	assert.InDelta(t, 0.30, b.MaxPositionRatio, 1e-9)
	assert.InDelta(t, 0.67, b.ReserveRatio, 1e-9)
	assert.NotNil(t, accts.balance) // default was persisted
}

func TestBalance_Idempotent(t *testing.T) {
	t.Parallel()

	l, _, trades := newLedger()
	trades.trades = append(trades.trades, sampleTrade())

	first, err := l.Balance()
	require.NoError(t, err)
	second, err := l.Balance()
	require.NoError(t, err)

	// LastUpdated comes from the persisted record, so the whole
	// snapshot must match field for field.
	assert.Equal(t, first, second)
}

func TestBalance_RecomputesFromTrades(t *testing.T) {
	t.Parallel()

	l, accts, trades := newLedger()

	// Seed a persisted record with stale cached aggregates.
	stale := NewBalance(100, policy.Default())
	stale.UsedBalance = 55
	stale.TotalTrades = 9
	stale.WinRate = 11
	accts.balance = &stale

	open := sampleTrade()
	closedWin := trade.Trade{ID: "T2", PositionSize: 10, Status: trade.Closed, PnL: 10}
	closedLoss := trade.Trade{ID: "T3", PositionSize: 10, Status: trade.Closed, PnL: -4}
	closedFlat := trade.Trade{ID: "T4", PositionSize: 10, Status: trade.Closed, PnL: 0}
	trades.trades = []trade.Trade{open, closedWin, closedLoss, closedFlat}

	b, err := l.Balance()
	require.NoError(t, err)

	assert.InDelta(t, 20.0, b.UsedBalance, 1e-9)
	assert.InDelta(t, 80.0, b.AvailableBalance, 1e-9)
	assert.Equal(t, 3, b.TotalTrades)
	assert.Equal(t, 1, b.WinTrades)
	assert.Equal(t, 1, b.LossTrades) // the flat trade counts toward neither
	assert.InDelta(t, 6.0, b.TotalPnL, 1e-9)
	assert.InDelta(t, 100.0/3.0, b.WinRate, 1e-9)
	assert.InDelta(t, 6.0, b.TotalPnLPercent, 1e-9)
}

func TestOpenPosition(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger()
	require.NoError(t, l.OpenPosition(sampleTrade()))

	b, err := l.Balance()
	require.NoError(t, err)
	// The trade record is not created yet, so the persisted cache
	// carries the reservation.
	assert.InDelta(t, 100.0, b.TotalBalance, 1e-9)
}

func TestOpenPosition_InsufficientFunds(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger()
	tr := sampleTrade()
	tr.PositionSize = 150

	err := l.OpenPosition(tr)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestOpenPosition_PolicyViolation(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger()
	tr := sampleTrade()
	tr.PositionSize = 35 // over the 30% cap, under available funds

	err := l.OpenPosition(tr)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestOpenCloseScenario(t *testing.T) {
	t.Parallel()

	// totalBalance=100, open LONG size=20 lev=5 entry=100, close at
	// 110: pnl=10, total becomes 110, one winning trade.
	l, accts, trades := newLedger()

	tr := sampleTrade()
	require.NoError(t, l.OpenPosition(tr))
	_, err := trades.Save(tr)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, accts.balance.UsedBalance, 1e-9)
	assert.InDelta(t, 80.0, accts.balance.AvailableBalance, 1e-9)

	// Lifecycle closes the trade first, then the ledger settles.
	tr.Status = trade.Closed
	tr.ExitPrice = 110
	tr.PnL = 10
	tr.PnLPercent = 50
	_, err = trades.Update(tr)
	require.NoError(t, err)

	require.NoError(t, l.ClosePosition(tr))

	b, err := l.Balance()
	require.NoError(t, err)
	assert.InDelta(t, 110.0, b.TotalBalance, 1e-9)
	assert.InDelta(t, 0.0, b.UsedBalance, 1e-9)
	assert.InDelta(t, 110.0, b.AvailableBalance, 1e-9)
	assert.InDelta(t, 10.0, b.TotalPnL, 1e-9)
	assert.Equal(t, 1, b.TotalTrades)
	assert.Equal(t, 1, b.WinTrades)
	assert.InDelta(t, 100.0, b.WinRate, 1e-9)
	assert.InDelta(t, 10.0, b.TotalPnLPercent, 1e-9)
	// Policy params follow the new total.
	assert.InDelta(t, 110*0.03, b.MaxRiskPerTrade, 1e-9)
}

func TestReset(t *testing.T) {
	t.Parallel()

	l, accts, _ := newLedger()
	require.NoError(t, l.Reset(500))

	b, err := l.Balance()
	require.NoError(t, err)
	assert.InDelta(t, 500.0, b.TotalBalance, 1e-9)
	assert.InDelta(t, 500.0, b.InitialBalance, 1e-9)
	assert.Equal(t, 0, b.TotalTrades)
	assert.InDelta(t, 15.0, b.MaxRiskPerTrade, 1e-9)
	assert.NotNil(t, accts.balance)
}

func TestReset_RejectsNonPositive(t *testing.T) {
	t.Parallel()

	l, accts, _ := newLedger()
	require.NoError(t, l.Reset(200))
	before := *accts.balance

	err := l.Reset(-5)
	assert.ErrorIs(t, err, ErrBadInitialBalance)
	assert.Equal(t, before, *accts.balance) // state unchanged

	err = l.Reset(0)
	assert.ErrorIs(t, err, ErrBadInitialBalance)
}

func TestAdvise(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger()

	d, err := l.Advise(20)
	require.NoError(t, err)
	assert.True(t, d.Compliant)

	d, err = l.Advise(40)
	require.NoError(t, err)
	assert.False(t, d.Compliant)
}

func TestSettleClose(t *testing.T) {
	t.Parallel()

	l, _, trades := newLedger()
	svc := trade.NewService(trades)

	tr := sampleTrade()
	tr.ID = "" // let the service assign one
	require.NoError(t, l.OpenPosition(tr))
	created, err := svc.Create(tr)
	require.NoError(t, err)

	closed, err := l.SettleClose(svc, created.ID, 110)
	require.NoError(t, err)
	assert.Equal(t, trade.Closed, closed.Status)
	assert.InDelta(t, 10.0, closed.PnL, 1e-9)

	b, err := l.Balance()
	require.NoError(t, err)
	assert.InDelta(t, 110.0, b.TotalBalance, 1e-9)
	assert.Equal(t, 1, b.TotalTrades)
}

func TestSettleClose_UnknownTrade(t *testing.T) {
	t.Parallel()

	l, _, trades := newLedger()
	svc := trade.NewService(trades)

	_, err := l.SettleClose(svc, "missing", 110)
	assert.ErrorIs(t, err, trade.ErrNotFound)
}
