package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/account"
	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/store"
	"github.com/rustyeddy/tradebook/trade"
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "A leveraged-trading journal and risk calculator",
	Long: `Tradebook is a personal journal for leveraged trades with automated
risk guidance based on the Tony method of capital management:

  - a single position never exceeds 30% of total capital
  - at least 67% of capital stays in reserve
  - no trade risks more than 3% of capital
  - reward to risk must be at least 2:1

It records planned and executed trades, tracks account capital, and
computes P/L, liquidation distance and position-sizing suggestions.`,
}

var cfgPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

// app wires the configured storage backend into the trade service and
// the account ledger.
type app struct {
	cfg    *config.Config
	svc    *trade.Service
	ledger *account.Ledger
	close  func() error
}

func newApp() (*app, error) {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	var (
		trades trade.Store
		accts  account.Store
		closer = func() error { return nil }
	)

	switch cfg.Data.Backend {
	case "json":
		js, err := store.NewJSONFiles(cfg.Data.Dir)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		trades, accts = js, js
	default:
		db, err := store.NewSQLite(cfg.Data.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		trades, accts = db, db
		closer = db.Close
	}

	pol := cfg.ToPolicy()
	return &app{
		cfg:    cfg,
		svc:    trade.NewService(trades),
		ledger: account.NewLedger(accts, trades, pol),
		close:  closer,
	}, nil
}
