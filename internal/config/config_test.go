package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mepgraphs/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	want := domain.ExportOptions{StoreUniqueIDs: true, BottomUp: true, ProjectWide: true}
	if got := cfg.ExportOptions(); got != want {
		t.Errorf("ExportOptions() = %+v, want %+v", got, want)
	}
	if cfg.Database.Path != "./mepgraphs.db" {
		t.Errorf("Database.Path = %s, want ./mepgraphs.db", cfg.Database.Path)
	}
	if cfg.Export.OutputDir != "." {
		t.Errorf("Export.OutputDir = %s, want .", cfg.Export.OutputDir)
	}
	if cfg.Export.TreeFormat != "xml" {
		t.Errorf("Export.TreeFormat = %s, want xml", cfg.Export.TreeFormat)
	}
	if cfg.DebounceInterval() != 500*time.Millisecond {
		t.Errorf("DebounceInterval() = %s, want 500ms", cfg.DebounceInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadKeepsExplicitFalse(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	data := []byte(`
export:
  store_json_graph_bottom_up: false
  store_entire_json_graph_on_project_info: false
  output_dir: out
watch:
  debounce: 2s
`)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	want := domain.ExportOptions{StoreUniqueIDs: true, BottomUp: false, ProjectWide: false}
	if got := cfg.ExportOptions(); got != want {
		t.Errorf("ExportOptions() = %+v, want %+v", got, want)
	}
	if cfg.Export.OutputDir != "out" {
		t.Errorf("Export.OutputDir = %s, want out", cfg.Export.OutputDir)
	}
	if cfg.DebounceInterval() != 2*time.Second {
		t.Errorf("DebounceInterval() = %s, want 2s", cfg.DebounceInterval())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"log level", "log:\n  level: loud\n"},
		{"tree format", "export:\n  tree_format: csv\n"},
		{"malformed yaml", "export: [\n"},
		{"bad duration", "watch:\n  debounce: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}
			if _, _, err := LoadFromPath(path); err == nil {
				t.Error("LoadFromPath() should fail")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Export.StoreUniqueIDs = Bool(false)
	cfg.Export.TreeFormat = "yaml"
	cfg.Database.Path = "/tmp/graphs.db"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.ExportOptions().StoreUniqueIDs {
		t.Error("StoreUniqueIDs should stay false after reload")
	}
	if loaded.Export.TreeFormat != "yaml" {
		t.Errorf("Export.TreeFormat = %s, want yaml", loaded.Export.TreeFormat)
	}
	if loaded.Database.Path != "/tmp/graphs.db" {
		t.Errorf("Database.Path = %s, want /tmp/graphs.db", loaded.Database.Path)
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Chdir(tmpDir)

	// Should find config in working directory
	found := FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	found = FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	// Explicit path that exists wins
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Export.BottomUp = Bool(false)

	want := "JSON: top-down, Storage: project info, Unique ids: true\n" +
		"Output: . (xml trees), Database: ./mepgraphs.db, Log: info"
	if got := cfg.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}

func TestParseParams(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		params, err := ParseParams(filepath.Join(t.TempDir(), ParamsFileName))
		if err != nil {
			t.Fatalf("ParseParams() error: %v", err)
		}
		if params != DefaultParams() {
			t.Errorf("ParseParams() = %+v, want defaults", params)
		}
	})

	t.Run("explicit switches", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ParamsFileName)
		data := `{"StoreUniqueId": false, "StoreJsonGraphBottomUp": false}`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}

		params, err := ParseParams(path)
		if err != nil {
			t.Fatalf("ParseParams() error: %v", err)
		}
		want := domain.ExportOptions{StoreUniqueIDs: false, BottomUp: false, ProjectWide: true}

		cfg := DefaultConfig()
		params.Apply(cfg)
		if got := cfg.ExportOptions(); got != want {
			t.Errorf("applied ExportOptions() = %+v, want %+v", got, want)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ParamsFileName)
		if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}
		if _, err := ParseParams(path); err == nil {
			t.Error("ParseParams() should fail on malformed JSON")
		}
	})
}

func TestFindParamsPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if got := FindParamsPath(""); got != "" {
		t.Errorf("FindParamsPath() = %s, want empty without params.json", got)
	}

	explicit := filepath.Join(t.TempDir(), "job.json")
	if got := FindParamsPath(explicit); got != explicit {
		t.Errorf("FindParamsPath(%s) = %s, explicit path should win even when missing", explicit, got)
	}

	if err := os.WriteFile(ParamsFileName, []byte(`{}`), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	want := filepath.Join(dir, ParamsFileName)
	if got := FindParamsPath(""); got != want {
		t.Errorf("FindParamsPath() = %s, want %s", got, want)
	}
	if got := FindParamsPath(explicit); got != explicit {
		t.Errorf("FindParamsPath(%s) = %s, flag should win over ./%s", explicit, got, ParamsFileName)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	if got, want := DefaultConfigPath(), filepath.Join(xdg, ConfigDirName, "config.yaml"); got != want {
		t.Errorf("DefaultConfigPath() = %s, want %s", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	if got := DefaultConfigPath(); got != ConfigFileName {
		t.Errorf("DefaultConfigPath() = %s, want %s", got, ConfigFileName)
	}
}
