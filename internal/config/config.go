// Package config provides configuration management for mepgraphs.
//
// Config file locations (priority order):
//  1. $MEPGRAPHS_CONFIG
//  2. ./mepgraphs.yaml
//  3. ~/.config/mepgraphs/config.yaml
//  4. /etc/mepgraphs/config.yaml
//
// The three export switches default to true, matching the behavior when no
// parameters are supplied at all.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"mepgraphs/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	defaultDatabasePath = "./mepgraphs.db"
	defaultOutputDir    = "."
	defaultTreeFormat   = "xml"
	defaultLogLevel     = "info"
	defaultDebounce     = 500 * time.Millisecond
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Export.StoreUniqueIDs == nil {
		c.Export.StoreUniqueIDs = Bool(true)
	}
	if c.Export.BottomUp == nil {
		c.Export.BottomUp = Bool(true)
	}
	if c.Export.ProjectWide == nil {
		c.Export.ProjectWide = Bool(true)
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = defaultOutputDir
	}
	if c.Export.TreeFormat == "" {
		c.Export.TreeFormat = defaultTreeFormat
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Watch.Debounce == nil {
		d := Duration(defaultDebounce)
		c.Watch.Debounce = &d
	}
}

// Validate checks enumerated values
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Export.TreeFormat {
	case "xml", "json", "yaml":
	default:
		return fmt.Errorf("invalid tree format %q", c.Export.TreeFormat)
	}
	return nil
}

// ExportOptions resolves the export switches
func (c *Config) ExportOptions() domain.ExportOptions {
	return domain.ExportOptions{
		StoreUniqueIDs: boolOr(c.Export.StoreUniqueIDs, true),
		BottomUp:       boolOr(c.Export.BottomUp, true),
		ProjectWide:    boolOr(c.Export.ProjectWide, true),
	}
}

// DebounceInterval returns the watch debounce interval
func (c *Config) DebounceInterval() time.Duration {
	if c.Watch.Debounce == nil {
		return defaultDebounce
	}
	return c.Watch.Debounce.Duration()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	opts := c.ExportOptions()

	orientation := "top-down"
	if opts.BottomUp {
		orientation = "bottom-up"
	}
	storage := "per network"
	if opts.ProjectWide {
		storage = "project info"
	}

	summary := fmt.Sprintf("JSON: %s, Storage: %s, Unique ids: %t\n", orientation, storage, opts.StoreUniqueIDs)
	summary += fmt.Sprintf("Output: %s (%s trees), Database: %s, Log: %s",
		c.Export.OutputDir, c.Export.TreeFormat, c.Database.Path, c.Log.Level)

	return summary
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
