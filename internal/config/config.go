// Package config loads table settings and session ledgers from HCL.
//
//	table "friday" {
//	  currency_ratio = 0.05
//	  equity_trials  = 2000
//	  seed           = 42
//	  log_level      = "debug"
//	}
//
//	player "p1" {
//	  name          = "Alice"
//	  initial_chips = 1000
//	  current_chips = 1350
//	}
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/gamenight/equity"
	"github.com/lox/gamenight/settlement"
)

// Config is the complete game-night configuration
type Config struct {
	Table   TableConfig    `hcl:"table,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// TableConfig holds settings for the outcome engine
type TableConfig struct {
	Name          string  `hcl:"name,label"`
	CurrencyRatio float64 `hcl:"currency_ratio,optional"`
	EquityTrials  int     `hcl:"equity_trials,optional"`
	Seed          int64   `hcl:"seed,optional"`
	LogLevel      string  `hcl:"log_level,optional"`
}

// PlayerConfig is one seat's ledger entry
type PlayerConfig struct {
	ID           string `hcl:"id,label"`
	Name         string `hcl:"name,optional"`
	InitialChips int64  `hcl:"initial_chips"`
	CurrentChips int64  `hcl:"current_chips,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Table: TableConfig{
			Name:          "default",
			CurrencyRatio: 1,
			EquityTrials:  equity.DefaultTrials,
			LogLevel:      "info",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Table.CurrencyRatio == 0 {
		c.Table.CurrencyRatio = 1
	}
	if c.Table.EquityTrials == 0 {
		c.Table.EquityTrials = equity.DefaultTrials
	}
	if c.Table.LogLevel == "" {
		c.Table.LogLevel = "info"
	}
	for i := range c.Players {
		if c.Players[i].Name == "" {
			c.Players[i].Name = c.Players[i].ID
		}
	}
}

// Validate checks the configuration for values the engine would reject
func (c *Config) Validate() error {
	if c.Table.CurrencyRatio <= 0 || math.IsInf(c.Table.CurrencyRatio, 0) || math.IsNaN(c.Table.CurrencyRatio) {
		return fmt.Errorf("table %s: currency_ratio must be positive", c.Table.Name)
	}
	if c.Table.EquityTrials < 0 {
		return fmt.Errorf("table %s: equity_trials must not be negative", c.Table.Name)
	}
	switch c.Table.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("table %s: invalid log_level %q", c.Table.Name, c.Table.LogLevel)
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.ID] {
			return fmt.Errorf("player %s: declared twice", p.ID)
		}
		seen[p.ID] = true
		if p.InitialChips < 0 || p.CurrentChips < 0 {
			return fmt.Errorf("player %s: chip counts must not be negative", p.ID)
		}
	}
	return nil
}

// PlayerNames returns display names in declaration order
func (c *Config) PlayerNames() []string {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return names
}

// Positions converts the player ledger for the settlement calculator
func (c *Config) Positions() []settlement.Position {
	out := make([]settlement.Position, len(c.Players))
	for i, p := range c.Players {
		out[i] = settlement.Position{
			ID:           p.ID,
			Name:         p.Name,
			InitialChips: p.InitialChips,
			CurrentChips: p.CurrentChips,
		}
	}
	return out
}
