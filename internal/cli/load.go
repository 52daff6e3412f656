package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neora-dev/neora/internal/config"
)

// loadConfig reads the config named by --config, or the default location.
// A missing default file falls back to built-in defaults; a missing explicit
// file is an error. Flag overrides are applied and the result validated.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	notice := cmd.ErrOrStderr()

	path := flagConfig
	explicit := path != ""
	if !explicit {
		path = config.ConfigFilePath()
	}

	cfg, err := config.LoadFromFile(path)
	switch {
	case err == nil:
		fmt.Fprintf(notice, "Config: %s\n", path)
	case !explicit && errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(notice, "No config file found, using defaults.")
		fmt.Fprintf(notice, "Create %s to customize.\n", path)
		cfg = config.Defaults()
	default:
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config) {
	if flagTheme != "" {
		cfg.App.Theme = flagTheme
	}
	if flagOrientation != "" {
		cfg.Indicator.Orientation = flagOrientation
	}
}
