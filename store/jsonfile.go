package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rustyeddy/tradebook/account"
	"github.com/rustyeddy/tradebook/trade"
)

const (
	tradesFile  = "trades.json"
	accountFile = "account_balance.json"
)

// JSONFiles persists trades and the account balance as pretty-printed
// JSON under a data directory. Every mutation rewrites the whole
// file; read errors propagate instead of falling back to defaults, so
// a corrupt file never silently masks data loss.
type JSONFiles struct {
	mu  sync.Mutex
	dir string
}

func NewJSONFiles(dir string) (*JSONFiles, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONFiles{dir: dir}, nil
}

func (j *JSONFiles) loadTrades() ([]trade.Trade, error) {
	data, err := os.ReadFile(filepath.Join(j.dir, tradesFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read trades: %w", err)
	}

	var trades []trade.Trade
	if err := json.Unmarshal(data, &trades); err != nil {
		return nil, fmt.Errorf("parse trades: %w", err)
	}
	return trades, nil
}

func (j *JSONFiles) saveTrades(trades []trade.Trade) error {
	data, err := json.MarshalIndent(trades, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trades: %w", err)
	}
	if err := os.WriteFile(filepath.Join(j.dir, tradesFile), data, 0644); err != nil {
		return fmt.Errorf("write trades: %w", err)
	}
	return nil
}

func (j *JSONFiles) Save(t trade.Trade) (trade.Trade, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	trades, err := j.loadTrades()
	if err != nil {
		return trade.Trade{}, err
	}
	trades = append(trades, t)
	if err := j.saveTrades(trades); err != nil {
		return trade.Trade{}, err
	}
	return t, nil
}

func (j *JSONFiles) Get(id string) (trade.Trade, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	trades, err := j.loadTrades()
	if err != nil {
		return trade.Trade{}, err
	}
	for _, t := range trades {
		if t.ID == id {
			return t, nil
		}
	}
	return trade.Trade{}, fmt.Errorf("trade %q: %w", id, trade.ErrNotFound)
}

func (j *JSONFiles) All() ([]trade.Trade, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.loadTrades()
}

func (j *JSONFiles) ByStatus(status trade.Status) ([]trade.Trade, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	trades, err := j.loadTrades()
	if err != nil {
		return nil, err
	}
	var out []trade.Trade
	for _, t := range trades {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (j *JSONFiles) Update(t trade.Trade) (trade.Trade, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	trades, err := j.loadTrades()
	if err != nil {
		return trade.Trade{}, err
	}
	for i := range trades {
		if trades[i].ID == t.ID {
			trades[i] = t
			if err := j.saveTrades(trades); err != nil {
				return trade.Trade{}, err
			}
			return t, nil
		}
	}
	return trade.Trade{}, fmt.Errorf("trade %q: %w", t.ID, trade.ErrNotFound)
}

func (j *JSONFiles) Delete(id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	trades, err := j.loadTrades()
	if err != nil {
		return err
	}
	for i := range trades {
		if trades[i].ID == id {
			trades = append(trades[:i], trades[i+1:]...)
			return j.saveTrades(trades)
		}
	}
	return fmt.Errorf("trade %q: %w", id, trade.ErrNotFound)
}

// Read implements account.Store.
func (j *JSONFiles) Read() (account.Balance, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(j.dir, accountFile))
	if os.IsNotExist(err) {
		return account.Balance{}, account.ErrNoAccount
	}
	if err != nil {
		return account.Balance{}, fmt.Errorf("read account: %w", err)
	}

	var b account.Balance
	if err := json.Unmarshal(data, &b); err != nil {
		return account.Balance{}, fmt.Errorf("parse account: %w", err)
	}
	return b, nil
}

// Write implements account.Store.
func (j *JSONFiles) Write(b account.Balance) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	if err := os.WriteFile(filepath.Join(j.dir, accountFile), data, 0644); err != nil {
		return fmt.Errorf("write account: %w", err)
	}
	return nil
}
