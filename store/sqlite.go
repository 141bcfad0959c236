// Package store provides the durable backends behind the trade and
// account contracts: a SQLite database and a plain JSON file tree.
// Both treat writes as whole-record replaces.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradebook/account"
	"github.com/rustyeddy/tradebook/position"
	"github.com/rustyeddy/tradebook/trade"
)

// SQLite backs both the trade store and the account store with one
// database file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

const tradeColumns = `id, symbol, direction, leverage, position_size,
	entry_price, entry_time, exit_price, exit_time, stop_loss, take_profit,
	pnl, pnl_percentage, reason, analysis, psychology, lesson, status`

func (s *SQLite) Save(t trade.Trade) (trade.Trade, error) {
	_, err := s.db.Exec(`
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Symbol, t.Direction.String(), t.Leverage, t.PositionSize,
		t.EntryPrice, t.EntryTime, t.ExitPrice, t.ExitTime, t.StopLoss, t.TakeProfit,
		t.PnL, t.PnLPercent, t.Reason, t.Analysis, t.Psychology, t.Lesson, string(t.Status),
	)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("save trade: %w", err)
	}
	return t, nil
}

func (s *SQLite) Get(id string) (trade.Trade, error) {
	row := s.db.QueryRow(`SELECT `+tradeColumns+` FROM trades WHERE id = ?`, id)
	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return trade.Trade{}, fmt.Errorf("trade %q: %w", id, trade.ErrNotFound)
	}
	if err != nil {
		return trade.Trade{}, err
	}
	return t, nil
}

func (s *SQLite) All() ([]trade.Trade, error) {
	return s.list(`SELECT ` + tradeColumns + ` FROM trades ORDER BY entry_time ASC`)
}

func (s *SQLite) ByStatus(status trade.Status) ([]trade.Trade, error) {
	return s.list(`SELECT `+tradeColumns+` FROM trades WHERE status = ? ORDER BY entry_time ASC`,
		string(status))
}

func (s *SQLite) list(query string, args ...any) ([]trade.Trade, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trade.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) Update(t trade.Trade) (trade.Trade, error) {
	res, err := s.db.Exec(`
		UPDATE trades SET symbol = ?, direction = ?, leverage = ?, position_size = ?,
			entry_price = ?, entry_time = ?, exit_price = ?, exit_time = ?,
			stop_loss = ?, take_profit = ?, pnl = ?, pnl_percentage = ?,
			reason = ?, analysis = ?, psychology = ?, lesson = ?, status = ?
		WHERE id = ?`,
		t.Symbol, t.Direction.String(), t.Leverage, t.PositionSize,
		t.EntryPrice, t.EntryTime, t.ExitPrice, t.ExitTime,
		t.StopLoss, t.TakeProfit, t.PnL, t.PnLPercent,
		t.Reason, t.Analysis, t.Psychology, t.Lesson, string(t.Status),
		t.ID,
	)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("update trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return trade.Trade{}, err
	}
	if n == 0 {
		return trade.Trade{}, fmt.Errorf("trade %q: %w", t.ID, trade.ErrNotFound)
	}
	return t, nil
}

func (s *SQLite) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", id, trade.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (trade.Trade, error) {
	var t trade.Trade
	var dir, status string
	err := row.Scan(
		&t.ID, &t.Symbol, &dir, &t.Leverage, &t.PositionSize,
		&t.EntryPrice, &t.EntryTime, &t.ExitPrice, &t.ExitTime,
		&t.StopLoss, &t.TakeProfit, &t.PnL, &t.PnLPercent,
		&t.Reason, &t.Analysis, &t.Psychology, &t.Lesson, &status,
	)
	if err != nil {
		return trade.Trade{}, err
	}
	t.Direction, err = position.ParseDirection(dir)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("trade %q: %w", t.ID, err)
	}
	t.Status = trade.Status(status)
	return t, nil
}

// Read implements account.Store.
func (s *SQLite) Read() (account.Balance, error) {
	var b account.Balance
	err := s.db.QueryRow(`
		SELECT total_balance, available_balance, used_balance, initial_balance,
			total_pnl, total_pnl_percentage, last_updated,
			total_trades, win_trades, loss_trades, win_rate,
			max_risk_per_trade, max_position_ratio, reserve_ratio
		FROM account WHERE id = 1`).Scan(
		&b.TotalBalance, &b.AvailableBalance, &b.UsedBalance, &b.InitialBalance,
		&b.TotalPnL, &b.TotalPnLPercent, &b.LastUpdated,
		&b.TotalTrades, &b.WinTrades, &b.LossTrades, &b.WinRate,
		&b.MaxRiskPerTrade, &b.MaxPositionRatio, &b.ReserveRatio,
	)
	if err == sql.ErrNoRows {
		return account.Balance{}, account.ErrNoAccount
	}
	if err != nil {
		return account.Balance{}, fmt.Errorf("read account: %w", err)
	}
	return b, nil
}

// Write implements account.Store with a whole-record replace.
func (s *SQLite) Write(b account.Balance) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO account (id, total_balance, available_balance, used_balance,
			initial_balance, total_pnl, total_pnl_percentage, last_updated,
			total_trades, win_trades, loss_trades, win_rate,
			max_risk_per_trade, max_position_ratio, reserve_ratio)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.TotalBalance, b.AvailableBalance, b.UsedBalance,
		b.InitialBalance, b.TotalPnL, b.TotalPnLPercent, b.LastUpdated,
		b.TotalTrades, b.WinTrades, b.LossTrades, b.WinRate,
		b.MaxRiskPerTrade, b.MaxPositionRatio, b.ReserveRatio,
	)
	if err != nil {
		return fmt.Errorf("write account: %w", err)
	}
	return nil
}
