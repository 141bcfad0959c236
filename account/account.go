// Package account maintains the single account ledger: total, used
// and available capital plus running trade statistics. The persisted
// aggregate fields are a cache; the trade store is the source of
// truth, and every read recomputes the derived fields from it.
package account

import (
	"errors"
	"time"

	"github.com/rustyeddy/tradebook/policy"
)

var (
	// ErrNoAccount is returned by a Store when no balance record has
	// been persisted yet.
	ErrNoAccount = errors.New("no account balance on record")

	ErrInsufficientFunds = errors.New("insufficient available balance")
	ErrRejected          = errors.New("position rejected by capital policy")
	ErrBadInitialBalance = errors.New("initial balance must be positive")
)

// DefaultInitialBalance is the capital a fresh account starts with.
const DefaultInitialBalance = 100.0

// Balance is the singleton snapshot of capital state.
type Balance struct {
	TotalBalance     float64 `json:"totalBalance"`
	AvailableBalance float64 `json:"availableBalance"`
	UsedBalance      float64 `json:"usedBalance"`

	// InitialBalance is the capital at the last reset. It is the
	// single baseline for TotalPnLPercent.
	InitialBalance float64 `json:"initialBalance"`

	TotalPnL        float64   `json:"totalPnl"`
	TotalPnLPercent float64   `json:"totalPnlPercentage"`
	LastUpdated     time.Time `json:"lastUpdated"`

	TotalTrades int     `json:"totalTrades"`
	WinTrades   int     `json:"winTrades"`
	LossTrades  int     `json:"lossTrades"`
	WinRate     float64 `json:"winRate"`

	// Tony method parameters, derived from TotalBalance.
	MaxRiskPerTrade  float64 `json:"maxRiskPerTrade"`
	MaxPositionRatio float64 `json:"maxPositionRatio"`
	ReserveRatio     float64 `json:"reserveRatio"`
}

// NewBalance returns a fresh account at the given capital with zeroed
// statistics.
func NewBalance(initial float64, p policy.Policy) Balance {
	b := Balance{
		TotalBalance:     initial,
		AvailableBalance: initial,
		InitialBalance:   initial,
		LastUpdated:      time.Now(),
	}
	b.refreshPolicyParams(p)
	return b
}

// refreshPolicyParams recomputes the derived Tony method fields; call
// after every TotalBalance change.
func (b *Balance) refreshPolicyParams(p policy.Policy) {
	b.MaxRiskPerTrade = p.MaxRiskPerTrade(b.TotalBalance)
	b.MaxPositionRatio = p.MaxPositionRatio
	b.ReserveRatio = p.ReserveRatio
}

// Store is the durable storage for the singleton balance record.
// Write replaces the whole record.
type Store interface {
	Read() (Balance, error)
	Write(Balance) error
}
