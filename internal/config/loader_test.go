package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoader_Defaults(t *testing.T) {
	t.Setenv("FT_DB_DIR", t.TempDir())
	t.Setenv("FT_CONFIG", "")

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Profiles.DefaultName != "Main" {
		t.Errorf("Profiles.DefaultName = %v, want Main", cfg.Profiles.DefaultName)
	}
	if cfg.Cache.Prefix != "futurTask" || cfg.Cache.Version != "1.0.0" {
		t.Errorf("Cache = %+v, want futurTask 1.0.0", cfg.Cache)
	}
	if cfg.Reminders.Interval != 5*time.Minute {
		t.Errorf("Reminders.Interval = %v, want 5m", cfg.Reminders.Interval)
	}
	if cfg.Stats.ChartTagLimit != 5 || cfg.Stats.TagListLimit != 10 || cfg.Stats.RecentLimit != 5 {
		t.Errorf("Stats = %+v", cfg.Stats)
	}
}

func TestLoader_Cascade(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `
[storage]
filename = "from-file.db"
query_timeout = "3s"

[cache]
version = "2.0.0"
origin = "http://file.example"

[logging]
level = "warn"
format = "json"
`)

	t.Setenv("FT_DB_DIR", dir)
	t.Setenv("FT_CONFIG", path)
	t.Setenv("FT_CACHE_ORIGIN", "http://env.example")
	t.Setenv("FT_LOG_LEVEL", "error")

	level := "debug"
	overrides := &ConfigOverrides{LogLevel: &level}

	cfg, err := NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		t.Fatalf("LoadWithOverrides() error = %v", err)
	}

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"file overrides default", cfg.Storage.Filename, "from-file.db"},
		{"file duration", cfg.Storage.QueryTimeout, 3 * time.Second},
		{"file only", cfg.Cache.Version, "2.0.0"},
		{"env overrides file", cfg.Cache.Origin, "http://env.example"},
		{"flag overrides env", cfg.Logging.Level, "debug"},
		{"file format", cfg.Logging.Format, "json"},
		{"default kept", cfg.Cache.Prefix, "futurTask"},
		{"env dir", cfg.Storage.Dir, dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoader_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `
[profiles]
default_name = "Personal"
`)
	t.Setenv("FT_DB_DIR", dir)
	t.Setenv("FT_CONFIG", "")

	cfg, err := NewLoader().WithFile(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profiles.DefaultName != "Personal" {
		t.Errorf("Profiles.DefaultName = %v, want Personal", cfg.Profiles.DefaultName)
	}
}

func TestLoader_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `[storage`)
	t.Setenv("FT_CONFIG", path)

	if _, err := NewLoader().Load(); err == nil {
		t.Errorf("Load() should fail for malformed TOML")
	}
}

func TestLoader_InvalidLogFormat(t *testing.T) {
	t.Setenv("FT_DB_DIR", t.TempDir())
	t.Setenv("FT_CONFIG", "")
	t.Setenv("FT_LOG_FORMAT", "xml")

	_, err := NewLoader().Load()
	if err == nil {
		t.Fatalf("Load() should reject unknown log format")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("Load() error type = %T, want *ConfigError", err)
	}
}

func TestLoader_VerboseEnablesDebug(t *testing.T) {
	t.Setenv("FT_DB_DIR", t.TempDir())
	t.Setenv("FT_CONFIG", "")

	verbose := true
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Verbose: &verbose})
	if err != nil {
		t.Fatalf("LoadWithOverrides() error = %v", err)
	}
	if !cfg.Application.Verbose || cfg.Logging.Level != "debug" {
		t.Errorf("verbose override = %v, level = %v", cfg.Application.Verbose, cfg.Logging.Level)
	}
}

func TestParseWithFallback(t *testing.T) {
	if got := ParseDurationWithFallback("bogus", time.Second); got != time.Second {
		t.Errorf("ParseDurationWithFallback() = %v", got)
	}
	if got := ParseIntWithFallback("12", 3); got != 12 {
		t.Errorf("ParseIntWithFallback() = %v", got)
	}
	if got := ParseBoolWithFallback("nope", true); !got {
		t.Errorf("ParseBoolWithFallback() = %v", got)
	}
	if got := ParseUint32WithFallback("700", 8, 0755); got != 0700 {
		t.Errorf("ParseUint32WithFallback() = %o", got)
	}
}
