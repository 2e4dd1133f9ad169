// Package config loads the tool configuration from an optional YAML
// file. Flags override file values, file values override defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SheetNames maps the three required record sheets to their names in
// the store. Deployments with localized workbooks override these (the
// original data set uses Товары/Клиенты/Заявки).
type SheetNames struct {
	Products string `yaml:"products"`
	Clients  string `yaml:"clients"`
	Orders   string `yaml:"orders"`
}

// Config is the on-disk configuration.
type Config struct {
	// Workbook is the path to the tabular store (.xlsx or .sqlite).
	Workbook string `yaml:"workbook"`

	Sheets SheetNames `yaml:"sheets"`

	// LogLevel is "debug", "info", "warn", or "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Sheets: SheetNames{
			Products: "Products",
			Clients:  "Clients",
			Orders:   "Orders",
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file over the defaults. Settings absent
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Sheets.Products == "" || cfg.Sheets.Clients == "" || cfg.Sheets.Orders == "" {
		return Config{}, fmt.Errorf("config %s: sheet names must not be empty", path)
	}
	return cfg, nil
}
