package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Export   ExportConfig   `yaml:"export"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Watch    WatchConfig    `yaml:"watch"`
}

// ExportConfig holds the export switches.
// Switches are pointers so an explicit false survives applyDefaults.
type ExportConfig struct {
	StoreUniqueIDs *bool  `yaml:"store_unique_ids,omitempty"`
	BottomUp       *bool  `yaml:"store_json_graph_bottom_up,omitempty"`
	ProjectWide    *bool  `yaml:"store_entire_json_graph_on_project_info,omitempty"`
	OutputDir      string `yaml:"output_dir"`
	TreeFormat     string `yaml:"tree_format"` // xml, json, yaml
}

// DatabaseConfig holds parameter store settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// WatchConfig holds model file watch settings
type WatchConfig struct {
	Debounce *Duration `yaml:"debounce,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Bool returns a pointer to b
func Bool(b bool) *bool {
	return &b
}
