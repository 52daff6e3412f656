package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/neora-dev/neora/internal/progress"
	"github.com/neora-dev/neora/internal/theme"
)

// Driver modes.
const (
	DriverTimer = "timer"
	DriverPlan  = "plan"
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Indicator IndicatorConfig `toml:"indicator"`
	Driver    DriverConfig    `toml:"driver"`
}

type AppConfig struct {
	Title string `toml:"title"`
	Theme string `toml:"theme"`
}

type IndicatorConfig struct {
	Orientation string       `toml:"orientation"`
	DashColor   string       `toml:"dash_color"`
	CurrentStep int          `toml:"current_step"`
	Steps       []StepConfig `toml:"steps"`
}

type StepConfig struct {
	Label   string   `toml:"label"`
	Explain string   `toml:"explain"`
	Run     []string `toml:"run"`
	Check   []string `toml:"check"`
}

type DriverConfig struct {
	Mode     string `toml:"mode"`
	Interval string `toml:"interval"`
}

func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Title: "Neora Installer",
			Theme: "light",
		},
		Indicator: IndicatorConfig{
			Orientation: "vertical",
			DashColor:   "#000000",
			Steps: []StepConfig{
				{Label: "Copying Windows files"},
				{Label: "Expanding Windows files"},
				{Label: "Installing features"},
				{Label: "Installing updates"},
				{Label: "Completing installation"},
			},
		},
		Driver: DriverConfig{
			Mode:     DriverTimer,
			Interval: "1s",
		},
	}
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Defaults()
	// A file that lists its own steps replaces the default list.
	cfg.Indicator.Steps = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Indicator.Steps) == 0 {
		cfg.Indicator.Steps = Defaults().Indicator.Steps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every malformed value at once.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Indicator.Steps) == 0 {
		errs = append(errs, progress.ErrNoSteps)
	}
	for i, s := range c.Indicator.Steps {
		if s.Label == "" {
			errs = append(errs, fmt.Errorf("indicator.steps[%d]: label is required", i))
		}
	}
	if c.Indicator.CurrentStep < 0 || c.Indicator.CurrentStep >= max(len(c.Indicator.Steps), 1) {
		errs = append(errs, fmt.Errorf("indicator.current_step: %w: %d", progress.ErrStepOutOfRange, c.Indicator.CurrentStep))
	}
	if _, err := progress.ParseOrientation(c.Indicator.Orientation); err != nil {
		errs = append(errs, fmt.Errorf("indicator.orientation: %w", err))
	}
	if _, err := theme.ParseColor(c.Indicator.DashColor); err != nil {
		errs = append(errs, fmt.Errorf("indicator.dash_color: %w", err))
	}
	if _, err := theme.Lookup(c.App.Theme); err != nil {
		errs = append(errs, fmt.Errorf("app.theme: %w", err))
	}

	switch c.Driver.Mode {
	case DriverTimer, DriverPlan:
	default:
		errs = append(errs, fmt.Errorf("driver.mode: unknown mode %q (want %q or %q)", c.Driver.Mode, DriverTimer, DriverPlan))
	}
	if _, err := c.TickInterval(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// TickInterval parses driver.interval.
func (c *Config) TickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Driver.Interval)
	if err != nil {
		return 0, fmt.Errorf("driver.interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("driver.interval: must be positive, got %s", d)
	}
	return d, nil
}

// Labels returns the configured step labels in order.
func (c *Config) Labels() []string {
	labels := make([]string, len(c.Indicator.Steps))
	for i, s := range c.Indicator.Steps {
		labels[i] = s.Label
	}
	return labels
}

// NewIndicator builds the progress indicator described by the config.
func (c *Config) NewIndicator() (*progress.Indicator, error) {
	orientation, err := progress.ParseOrientation(c.Indicator.Orientation)
	if err != nil {
		return nil, err
	}
	dash, err := theme.ParseColor(c.Indicator.DashColor)
	if err != nil {
		return nil, err
	}
	return progress.New(progress.Options{
		Steps:       c.Labels(),
		CurrentStep: c.Indicator.CurrentStep,
		DashColor:   dash,
		Orientation: orientation,
	})
}

// Palette resolves app.theme.
func (c *Config) Palette() (theme.Palette, error) {
	return theme.Lookup(c.App.Theme)
}
