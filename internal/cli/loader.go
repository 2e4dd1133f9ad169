package cli

import (
	"fmt"
	"os"

	"github.com/avolkov/orderdesk/internal/config"
	"github.com/avolkov/orderdesk/internal/logging"
	"github.com/avolkov/orderdesk/internal/repository"
	"github.com/avolkov/orderdesk/internal/tabular"
)

// resolveConfig merges defaults, the optional config file, and flags.
// Flags win over file values.
func resolveConfig(opts *RootOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if opts.Workbook != "" {
		cfg.Workbook = opts.Workbook
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if cfg.Workbook == "" {
		return config.Config{}, fmt.Errorf("no store given: set --workbook or the workbook config key")
	}
	return cfg, nil
}

// openRepository builds the tabular source from the resolved config
// and loads the full snapshot. Every command starts here; a failure at
// this stage is a command error (exit code 2) since no operation is
// usable without a loaded snapshot.
func openRepository(opts *RootOptions) (*repository.Repository, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "configuration", err)
	}

	if _, err := os.Stat(cfg.Workbook); os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("store not found: %s", cfg.Workbook))
	}

	src, err := tabular.Open(cfg.Workbook)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open store", err)
	}

	repo, err := repository.Load(src, cfg.Sheets, logging.New(cfg.LogLevel))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load store", err)
	}
	return repo, nil
}
