// Package config loads the tradebook configuration from a YAML or
// JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradebook/policy"
)

// Config is the complete tradebook configuration.
type Config struct {
	Data    DataConfig    `json:"data" yaml:"data"`
	Account AccountConfig `json:"account" yaml:"account"`
	Policy  PolicyConfig  `json:"policy" yaml:"policy"`
}

// DataConfig selects and parameterizes the storage backend.
type DataConfig struct {
	Backend string `json:"backend" yaml:"backend"` // "sqlite" or "json"
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	Dir     string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance"`
}

// PolicyConfig carries the capital-management parameters. The
// defaults are the Tony method numbers; they are configurable so a
// stricter trader can tighten them.
type PolicyConfig struct {
	MaxPositionRatio float64 `json:"max_position_ratio" yaml:"max_position_ratio"`
	ReserveRatio     float64 `json:"reserve_ratio" yaml:"reserve_ratio"`
	MaxRiskPct       float64 `json:"max_risk_pct" yaml:"max_risk_pct"`
	MinRiskReward    float64 `json:"min_risk_reward" yaml:"min_risk_reward"`
}

// ToPolicy converts the configured parameters into a policy value.
func (c *Config) ToPolicy() policy.Policy {
	return policy.Policy{
		MaxPositionRatio: c.Policy.MaxPositionRatio,
		ReserveRatio:     c.Policy.ReserveRatio,
		MaxRiskPct:       c.Policy.MaxRiskPct,
		MinRiskReward:    c.Policy.MinRiskReward,
	}
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, choosing the format by file
// extension (.yaml/.yml for YAML, anything else JSON).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Data.Backend {
	case "sqlite":
		if c.Data.DBPath == "" {
			return fmt.Errorf("data.db_path required for sqlite backend")
		}
	case "json":
		if c.Data.Dir == "" {
			return fmt.Errorf("data.dir required for json backend")
		}
	default:
		return fmt.Errorf("data.backend must be 'sqlite' or 'json'")
	}

	if c.Account.InitialBalance <= 0 {
		return fmt.Errorf("account.initial_balance must be positive")
	}
	if c.Policy.MaxPositionRatio <= 0 || c.Policy.MaxPositionRatio > 1 {
		return fmt.Errorf("policy.max_position_ratio must be between 0 and 1")
	}
	if c.Policy.ReserveRatio < 0 || c.Policy.ReserveRatio >= 1 {
		return fmt.Errorf("policy.reserve_ratio must be in [0, 1)")
	}
	if c.Policy.MaxRiskPct <= 0 || c.Policy.MaxRiskPct > 1 {
		return fmt.Errorf("policy.max_risk_pct must be between 0 and 1")
	}
	if c.Policy.MinRiskReward <= 0 {
		return fmt.Errorf("policy.min_risk_reward must be positive")
	}
	return nil
}

// Default returns a configuration with the Tony method defaults and a
// local SQLite database.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Backend: "sqlite",
			DBPath:  "./tradebook.sqlite",
		},
		Account: AccountConfig{
			InitialBalance: 100,
		},
		Policy: PolicyConfig{
			MaxPositionRatio: 0.30,
			ReserveRatio:     0.67,
			MaxRiskPct:       0.03,
			MinRiskReward:    2.0,
		},
	}
}
