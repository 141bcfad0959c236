// Package trade defines the journal's trade record and its lifecycle:
// open (or plan), mark to a price, close. Closing a trade does not
// settle the account; see Service.Close.
package trade

import (
	"errors"
	"time"

	"github.com/rustyeddy/tradebook/position"
)

// ErrNotFound is returned when a trade id is unknown to the store.
var ErrNotFound = errors.New("trade not found")

type Status string

const (
	Planned Status = "PLANNED"
	Open    Status = "OPEN"
	Closed  Status = "CLOSED"
)

// Trade is one leveraged position, open or closed. PnL and PnLPercent
// are derived fields: they are recomputed from a supplied price, never
// edited directly.
type Trade struct {
	ID        string             `json:"id"`
	Symbol    string             `json:"symbol"`
	Direction position.Direction `json:"direction"`

	Leverage     float64 `json:"leverage"`
	PositionSize float64 `json:"positionSize"`

	EntryPrice float64   `json:"entryPrice"`
	EntryTime  time.Time `json:"entryTime"`
	ExitPrice  float64   `json:"exitPrice,omitempty"`
	ExitTime   time.Time `json:"exitTime,omitempty"`

	StopLoss   float64 `json:"stopLoss"`
	TakeProfit float64 `json:"takeProfit"`

	PnL        float64 `json:"pnl"`
	PnLPercent float64 `json:"pnlPercentage"`

	// Journal fields, free text.
	Reason     string `json:"tradingReason,omitempty"`
	Analysis   string `json:"marketAnalysis,omitempty"`
	Psychology string `json:"psychologicalState,omitempty"`
	Lesson     string `json:"lessonLearned,omitempty"`

	Status Status `json:"status"`
}

// IsOpen reports whether the trade still holds capital.
func (t Trade) IsOpen() bool { return t.Status == Open }

// Store is the durable keyed storage a Service needs. Writes are
// whole-record replaces; there is no partial-write visibility.
type Store interface {
	Save(Trade) (Trade, error)
	Get(id string) (Trade, error)
	All() ([]Trade, error)
	ByStatus(Status) ([]Trade, error)
	Update(Trade) (Trade, error)
	Delete(id string) error
}
