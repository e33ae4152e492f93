// Package config provides configuration file support for the tmpdir CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tmpdir-project/tmpdir/pkg/fsutil"
)

// Config represents the tmpdir configuration.
type Config struct {
	BaseDir string        `yaml:"base_dir"` // Parent for new directories; empty means the system temp dir.
	Prefix  string        `yaml:"prefix"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Logging LoggingConfig `yaml:"logging"`
}

// SweepConfig configures orphan sweeping.
type SweepConfig struct {
	MaxAge string `yaml:"max_age"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Prefix: "tmp",
		Sweep: SweepConfig{
			MaxAge: "24h",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "tmpdir", "config.yaml"), nil
}

// Load loads configuration from path.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil // No config file is OK, use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SweepMaxAge parses the configured sweep age.
func (c *Config) SweepMaxAge() (time.Duration, error) {
	if c.Sweep.MaxAge == "" {
		return 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(c.Sweep.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("parse sweep.max_age: %w", err)
	}
	return d, nil
}
