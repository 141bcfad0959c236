package account

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/tradebook/policy"
	"github.com/rustyeddy/tradebook/trade"
)

// Ledger owns all mutations of the account balance. A single mutex
// serializes the read-modify-write sequences; the underlying stores
// make no atomicity promises of their own.
type Ledger struct {
	mu     sync.Mutex
	acct   Store
	trades trade.Store
	policy policy.Policy
}

func NewLedger(acct Store, trades trade.Store, p policy.Policy) *Ledger {
	return &Ledger{acct: acct, trades: trades, policy: p}
}

// Balance loads the persisted record, creating a default 100-unit
// account on first use, and recomputes every derived field from the
// full trade history. Two calls with no trade mutation in between
// return identical values.
func (l *Ledger) Balance() (Balance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked()
}

// rawLocked loads the persisted record as-is, creating the default
// account on first use. No derived field is recomputed.
func (l *Ledger) rawLocked() (Balance, error) {
	b, err := l.acct.Read()
	if errors.Is(err, ErrNoAccount) {
		b = NewBalance(DefaultInitialBalance, l.policy)
		if err := l.acct.Write(b); err != nil {
			return Balance{}, fmt.Errorf("create default account: %w", err)
		}
	} else if err != nil {
		return Balance{}, fmt.Errorf("read account: %w", err)
	}
	return b, nil
}

func (l *Ledger) balanceLocked() (Balance, error) {
	b, err := l.rawLocked()
	if err != nil {
		return Balance{}, err
	}

	all, err := l.trades.All()
	if err != nil {
		return Balance{}, fmt.Errorf("scan trades: %w", err)
	}

	var used, totalPnl float64
	var total, wins, losses int
	for _, t := range all {
		switch t.Status {
		case trade.Open:
			used += t.PositionSize
		case trade.Closed:
			total++
			totalPnl += t.PnL
			if t.PnL > 0 {
				wins++
			} else if t.PnL < 0 {
				losses++
			}
		}
	}

	b.UsedBalance = used
	b.AvailableBalance = b.TotalBalance - used
	b.TotalTrades = total
	b.WinTrades = wins
	b.LossTrades = losses
	b.TotalPnL = totalPnl

	b.WinRate = 0
	if total > 0 {
		b.WinRate = float64(wins) / float64(total) * 100
	}

	b.TotalPnLPercent = 0
	if b.InitialBalance > 0 {
		b.TotalPnLPercent = totalPnl / b.InitialBalance * 100
	}

	return b, nil
}

// OpenPosition reserves capital for a trade. It rejects the position
// when available funds are short or the capital policy says no; it
// does not create the trade record itself. Callers create the trade
// only after OpenPosition succeeds.
func (l *Ledger) OpenPosition(t trade.Trade) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.balanceLocked()
	if err != nil {
		return err
	}

	if b.AvailableBalance < t.PositionSize {
		return fmt.Errorf("%w: need %.2f, have %.2f",
			ErrInsufficientFunds, t.PositionSize, b.AvailableBalance)
	}

	d := policy.Evaluate(l.policy, policy.Snapshot{
		TotalBalance: b.TotalBalance,
		UsedBalance:  b.UsedBalance,
	}, t.PositionSize)
	if !d.Compliant {
		return fmt.Errorf("%w: %s", ErrRejected, d.Violations[0].Msg)
	}

	b.UsedBalance += t.PositionSize
	b.AvailableBalance = b.TotalBalance - b.UsedBalance
	return l.writeLocked(b)
}

// ClosePosition settles a closed trade against the account: releases
// its capital, applies the realized pnl and updates the statistics.
// It works on the persisted record rather than the recomputed view,
// because by this point the trade is already CLOSED in the trade
// store and a recompute would count its pnl a second time.
func (l *Ledger) ClosePosition(t trade.Trade) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.rawLocked()
	if err != nil {
		return err
	}

	b.UsedBalance -= t.PositionSize
	b.TotalBalance += t.PnL
	b.TotalPnL += t.PnL
	b.AvailableBalance = b.TotalBalance - b.UsedBalance

	b.TotalTrades++
	if t.PnL > 0 {
		b.WinTrades++
	} else if t.PnL < 0 {
		b.LossTrades++
	}
	if b.TotalTrades > 0 {
		b.WinRate = float64(b.WinTrades) / float64(b.TotalTrades) * 100
	}
	if b.InitialBalance > 0 {
		b.TotalPnLPercent = b.TotalPnL / b.InitialBalance * 100
	}

	b.refreshPolicyParams(l.policy)
	return l.writeLocked(b)
}

// Reset replaces the account with a fresh record at the given
// capital. The old record is untouched when validation fails.
func (l *Ledger) Reset(initial float64) error {
	if initial <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrBadInitialBalance, initial)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writeLocked(NewBalance(initial, l.policy))
}

// Update persists the balance verbatim, stamping only LastUpdated.
// Used for direct settings edits; no derived field is recomputed.
func (l *Ledger) Update(b Balance) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writeLocked(b)
}

// Advise runs the capital policy against a proposed position size and
// returns the generated advice text.
func (l *Ledger) Advise(positionSize float64) (policy.Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.balanceLocked()
	if err != nil {
		return policy.Decision{}, err
	}
	return policy.Evaluate(l.policy, policy.Snapshot{
		TotalBalance: b.TotalBalance,
		UsedBalance:  b.UsedBalance,
	}, positionSize), nil
}

// SettleClose closes the trade and settles the account in one call.
// The two stores are not transactional: if settlement fails the trade
// is already CLOSED, and the error says so.
func (l *Ledger) SettleClose(svc *trade.Service, tradeID string, exitPrice float64) (trade.Trade, error) {
	t, err := svc.Close(tradeID, exitPrice)
	if err != nil {
		return trade.Trade{}, err
	}
	if err := l.ClosePosition(t); err != nil {
		return t, fmt.Errorf("trade %q closed but account not settled: %w", t.ID, err)
	}
	return t, nil
}

func (l *Ledger) writeLocked(b Balance) error {
	b.LastUpdated = time.Now()
	if err := l.acct.Write(b); err != nil {
		return fmt.Errorf("write account: %w", err)
	}
	return nil
}
