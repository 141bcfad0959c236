package trade

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradebook/pkg/id"
	"github.com/rustyeddy/tradebook/position"
)

// Service drives the trade state machine: PLANNED/OPEN -> CLOSED,
// never back.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create records a new open position. A missing id is assigned and
// the entry time is stamped; the status is forced to OPEN regardless
// of what the caller set.
func (s *Service) Create(t Trade) (Trade, error) {
	if t.ID == "" {
		t.ID = id.New()
	}
	t.EntryTime = time.Now()
	t.Status = Open
	return s.store.Save(t)
}

// Plan records a trade that has not been entered yet.
func (s *Service) Plan(t Trade) (Trade, error) {
	if t.ID == "" {
		t.ID = id.New()
	}
	t.Status = Planned
	return s.store.Save(t)
}

func (s *Service) Get(tradeID string) (Trade, error) {
	return s.store.Get(tradeID)
}

func (s *Service) Update(t Trade) (Trade, error) {
	return s.store.Update(t)
}

func (s *Service) Delete(tradeID string) error {
	return s.store.Delete(tradeID)
}

func (s *Service) List() ([]Trade, error) {
	return s.store.All()
}

func (s *Service) ListByStatus(status Status) ([]Trade, error) {
	return s.store.ByStatus(status)
}

func (s *Service) ListOpen() ([]Trade, error) {
	return s.store.ByStatus(Open)
}

func (s *Service) ListClosed() ([]Trade, error) {
	return s.store.ByStatus(Closed)
}

// UpdatePnL marks an existing trade to currentPrice and persists the
// recomputed pnl fields. The status never changes here: crossing the
// liquidation threshold is advisory, not an automatic close.
func (s *Service) UpdatePnL(tradeID string, currentPrice float64) (Trade, error) {
	t, err := s.store.Get(tradeID)
	if err != nil {
		return Trade{}, fmt.Errorf("update pnl: %w", err)
	}

	pnl, err := position.PnL(t.Direction, t.PositionSize, t.Leverage, t.EntryPrice, currentPrice)
	if err != nil {
		return Trade{}, fmt.Errorf("update pnl %q: %w", tradeID, err)
	}
	pct, err := position.PnLPercent(t.Direction, t.Leverage, t.EntryPrice, currentPrice)
	if err != nil {
		return Trade{}, fmt.Errorf("update pnl %q: %w", tradeID, err)
	}

	t.PnL = pnl
	t.PnLPercent = pct
	return s.store.Update(t)
}

// Close sets the exit fields, computes the final pnl and marks the
// trade CLOSED. It does NOT settle the account ledger: the caller is
// responsible for also invoking account.Ledger.ClosePosition with the
// returned trade (or use account.Ledger.SettleClose, which composes
// the two calls).
func (s *Service) Close(tradeID string, exitPrice float64) (Trade, error) {
	t, err := s.store.Get(tradeID)
	if err != nil {
		return Trade{}, fmt.Errorf("close: %w", err)
	}

	pnl, err := position.PnL(t.Direction, t.PositionSize, t.Leverage, t.EntryPrice, exitPrice)
	if err != nil {
		return Trade{}, fmt.Errorf("close %q: %w", tradeID, err)
	}
	pct, err := position.PnLPercent(t.Direction, t.Leverage, t.EntryPrice, exitPrice)
	if err != nil {
		return Trade{}, fmt.Errorf("close %q: %w", tradeID, err)
	}

	t.ExitPrice = exitPrice
	t.ExitTime = time.Now()
	t.Status = Closed
	t.PnL = pnl
	t.PnLPercent = pct
	return s.store.Update(t)
}
