/*
Package config loads operator settings from a JSON file.

PURPOSE:
  Holds the handful of knobs that vary per installation: the low-stock
  threshold, how many database backups to retain, display formatting.
  Everything else is code.

BEHAVIOR:
  Load merges the file over defaults, so a config written by an older
  build keeps working when new fields appear. A missing file is
  created with the defaults so the operator has something to edit.
*/
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// DefaultPath is where the CLI and server look when no -config flag
// is given.
const DefaultPath = "inventory_config.json"

// Config holds operator-tunable settings.
type Config struct {
	// LowStockThreshold marks dimensions as running low when their
	// balance is positive but below this value.
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`

	// BackupsToKeep bounds the backup_db_* snapshots kept next to
	// the database. Zero or negative keeps everything.
	BackupsToKeep int `json:"backups_to_keep"`

	// DateFormat is the Go layout used when rendering dates.
	DateFormat string `json:"date_format"`

	// Currency is the symbol prefixed to money amounts in rendered
	// output. Purely cosmetic.
	Currency string `json:"currency"`

	// EnableProfitTracking controls whether reports show cost,
	// profit and margin columns.
	EnableProfitTracking bool `json:"enable_profit_tracking"`
}

// Default returns the settings a fresh installation starts with.
func Default() Config {
	return Config{
		LowStockThreshold:    decimal.NewFromInt(10),
		BackupsToKeep:        30,
		DateFormat:           "2006-01-02",
		Currency:             "$",
		EnableProfitTracking: true,
	}
}

// Load reads the config at path, merging it over the defaults. When
// the file does not exist it is created with the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return cfg, fmt.Errorf("failed to write default config: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
