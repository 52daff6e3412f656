package cli

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/neora-dev/neora/internal/config"
	"github.com/neora-dev/neora/internal/exec"
	"github.com/neora-dev/neora/internal/logging"
	"github.com/neora-dev/neora/internal/plan"
	"github.com/neora-dev/neora/internal/theme"
	"github.com/neora-dev/neora/internal/tui/installer"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Show the installer progress screen",
		Long:  "Run the installer screen. In timer mode the current step advances every driver.interval and wraps; in plan mode it follows the configured step commands.",
		RunE:  runInstaller,
	}
}

func runInstaller(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Setup(config.LogFilePath(), flagVerbose, cmd.ErrOrStderr())
	if err != nil {
		logger = slog.New(logging.NopHandler{})
	} else {
		defer closer.Close()
	}

	opts, err := installerOptions(cfg, logger)
	if err != nil {
		return err
	}

	m, err := installer.New(opts)
	if err != nil {
		return err
	}

	logger.Info("installer started",
		slog.String("title", cfg.App.Title),
		slog.String("driver", cfg.Driver.Mode),
		slog.Int("steps", opts.Indicator.Len()),
	)

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running installer screen: %w", err)
	}

	fm, ok := final.(installer.Model)
	if !ok {
		return nil
	}
	if r := fm.Result(); r != nil {
		logger.Info("plan finished",
			slog.Int("completed", r.Completed),
			slog.Int("skipped", r.Skipped),
			slog.Int("total", r.Total),
		)
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

func installerOptions(cfg *config.Config, logger *slog.Logger) (installer.Options, error) {
	ind, err := cfg.NewIndicator()
	if err != nil {
		return installer.Options{}, err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return installer.Options{}, err
	}

	opts := installer.Options{
		Title:       cfg.App.Title,
		Indicator:   ind,
		Palette:     pal,
		Font:        theme.DefaultFont(),
		ShowExplain: flagExplain,
	}
	for _, s := range cfg.Indicator.Steps {
		opts.Explain = append(opts.Explain, s.Explain)
	}

	switch cfg.Driver.Mode {
	case config.DriverPlan:
		p, err := plan.FromConfig(cfg, exec.DefaultRunner{})
		if err != nil {
			return installer.Options{}, err
		}
		opts.Plan = p
		opts.Runner = plan.NewRunner(logger, flagDryRun)
	default:
		opts.Interval, err = cfg.TickInterval()
		if err != nil {
			return installer.Options{}, err
		}
	}

	return opts, nil
}
