package store

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	leverage REAL NOT NULL,
	position_size REAL NOT NULL,
	entry_price REAL NOT NULL,
	entry_time DATETIME NOT NULL,
	exit_price REAL NOT NULL DEFAULT 0,
	exit_time DATETIME NOT NULL,
	stop_loss REAL NOT NULL DEFAULT 0,
	take_profit REAL NOT NULL DEFAULT 0,
	pnl REAL NOT NULL DEFAULT 0,
	pnl_percentage REAL NOT NULL DEFAULT 0,
	reason TEXT NOT NULL DEFAULT '',
	analysis TEXT NOT NULL DEFAULT '',
	psychology TEXT NOT NULL DEFAULT '',
	lesson TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);

CREATE TABLE IF NOT EXISTS account (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	total_balance REAL NOT NULL,
	available_balance REAL NOT NULL,
	used_balance REAL NOT NULL,
	initial_balance REAL NOT NULL,
	total_pnl REAL NOT NULL,
	total_pnl_percentage REAL NOT NULL,
	last_updated DATETIME NOT NULL,
	total_trades INTEGER NOT NULL,
	win_trades INTEGER NOT NULL,
	loss_trades INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	max_risk_per_trade REAL NOT NULL,
	max_position_ratio REAL NOT NULL,
	reserve_ratio REAL NOT NULL
);
`
