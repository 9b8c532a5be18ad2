// Package config handles TOML-based configuration loading and validation.
// Configuration merges in three layers: built-in defaults, the config file,
// then CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	OutputDir       string `toml:"output_dir"`
	Quiet           bool   `toml:"quiet"`
	Debug           bool   `toml:"debug"`
	DebugDir        string `toml:"debug_dir"`
	SaveMetadata    bool   `toml:"save_metadata"`
	SaveThumbnail   bool   `toml:"save_thumbnail"`
	SkipExisting    bool   `toml:"skip_existing"`
	ContinueOnError bool   `toml:"continue_on_error"`
	History         bool   `toml:"history"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		OutputDir:      "~/Videos/reelgrab",
		History:        true,
		TimeoutSeconds: 15,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reelgrab"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "reelgrab"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 120 {
		return fmt.Errorf("timeout %ds out of range (valid: 1-120)", c.TimeoutSeconds)
	}
	return nil
}

// ExpandOutputDir resolves ~ in the output directory path.
func (c *Config) ExpandOutputDir() (string, error) {
	return expand(c.OutputDir)
}

// ExpandDebugDir resolves the debug directory, defaulting to a "debug"
// subdirectory of the output directory when unset.
func (c *Config) ExpandDebugDir() (string, error) {
	if c.DebugDir == "" {
		out, err := c.ExpandOutputDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(out, "debug"), nil
	}
	return expand(c.DebugDir)
}

func expand(dir string) (string, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// HistoryPath returns the path to the download history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "reelgrab", "history.db"), nil
}
