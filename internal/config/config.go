// Package config loads and validates the chrono TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/xolan/chrono/internal/logger"
	"github.com/xolan/chrono/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"

	// DefaultTheme is the bubbletint theme used when none is configured
	DefaultTheme = "dracula"

	// MaxInitialStopwatches bounds the number of stopwatches seeded on first run
	MaxInitialStopwatches = 20
)

// Config represents the application configuration
type Config struct {
	// Theme is the bubbletint theme ID used by the TUI
	Theme string `toml:"theme"`
	// StopAllOnStart stops every other stopwatch when one is started
	StopAllOnStart bool `toml:"stop_all_on_start"`
	// ConfirmActions asks for confirmation before reset and delete in the TUI
	ConfirmActions bool `toml:"confirm_actions"`
	// InitialStopwatches is how many stopwatches are created when no session exists
	InitialStopwatches int `toml:"initial_stopwatches"`
	// LogLevel is the level used when logging is enabled (off, normal, verbose)
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns a Config with the defaults used when no file exists.
func DefaultConfig() Config {
	return Config{
		Theme:              DefaultTheme,
		StopAllOnStart:     false,
		ConfirmActions:     true,
		InitialStopwatches: 3,
		LogLevel:           "normal",
	}
}

// Normalize trims and lowercases string fields in place.
// An empty theme falls back to DefaultTheme.
func (c *Config) Normalize() {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.InitialStopwatches < 0 || c.InitialStopwatches > MaxInitialStopwatches {
		return fmt.Errorf("invalid initial_stopwatches %d: must be between 0 and %d",
			c.InitialStopwatches, MaxInitialStopwatches)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: must be 'off', 'normal' or 'verbose'", c.LogLevel)
	}
	return nil
}

// Load reads the config file at path. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return Config{}, fmt.Errorf("failed to parse config file: %s", parseErr.ErrorWithPosition())
		}
		return Config{}, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, or returns the defaults if it does
// not exist. Any other error is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// GetConfigPath returns the path to the config file, creating the
// application directory if needed.
func GetConfigPath() (string, error) {
	return osutil.AppFile(ConfigFile)
}

// GenerateSampleConfig returns a commented sample configuration.
func GenerateSampleConfig() string {
	return `# chrono configuration file
# Location: <user config dir>/chrono/config.toml

# Theme used by the terminal UI (press 't' in the UI to cycle themes)
# Examples: "dracula", "nord", "gruvbox_dark", "tokyo_night"
# theme = "dracula"

# Stop every other stopwatch when one is started
# stop_all_on_start = false

# Ask for confirmation before resetting or deleting a stopwatch in the UI
# confirm_actions = true

# Number of stopwatches created when no session exists yet (0-20)
# initial_stopwatches = 3

# Log level used with --log: "off", "normal" or "verbose"
# log_level = "normal"
`
}
