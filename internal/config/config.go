// Package config holds the user-facing configuration: restore defaults,
// journal location, and logging.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nward/homerestore/internal/domain"
)

// Config represents the complete configuration for homerestore
type Config struct {
	// Restore holds defaults for the restore pipeline
	Restore RestoreConfig `mapstructure:"restore"`

	// State configures the run journal
	State StateConfig `mapstructure:"state"`

	// Log configures logging
	Log LogConfig `mapstructure:"log"`
}

// RestoreConfig holds defaults for the restore pipeline
type RestoreConfig struct {
	// Jobs is the copy worker count
	Jobs int `mapstructure:"jobs"`

	// HomeDir overrides the destination home directory
	HomeDir string `mapstructure:"home_dir"`
}

// StateConfig configures the run journal
type StateConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig configures logging
type LogConfig struct {
	Level       string        `mapstructure:"level"`
	Format      string        `mapstructure:"format"`
	RedactPaths bool          `mapstructure:"redact_paths"`
	File        LogFileConfig `mapstructure:"file"`
}

// LogFileConfig configures the rotating log file
type LogFileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks if the configuration is consistent
func (c *Config) Validate() error {
	if c.Restore.Jobs < 1 {
		return fmt.Errorf("%w: restore.jobs must be at least 1, got %d",
			domain.ErrConfigInvalid, c.Restore.Jobs)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level: %s", domain.ErrConfigInvalid, c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format: %s", domain.ErrConfigInvalid, c.Log.Format)
	}

	if c.Log.File.Enabled && c.Log.File.Path == "" {
		return fmt.Errorf("%w: log.file.path cannot be empty when file logging is enabled",
			domain.ErrConfigInvalid)
	}

	if c.State.Enabled && c.State.DataDir == "" {
		return fmt.Errorf("%w: state.data_dir cannot be empty when the journal is enabled",
			domain.ErrConfigInvalid)
	}

	return nil
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
				path = filepath.Join(home, path[2:])
			} else if len(path) == 1 {
				path = home
			}
		}
	}
	path = os.ExpandEnv(path)
	return filepath.Clean(path)
}
