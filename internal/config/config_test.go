package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %q, want sqlite", cfg.DataBackend)
	}
	if cfg.SQLiteDBPath != "./data/gastos.db" {
		t.Errorf("SQLiteDBPath = %q", cfg.SQLiteDBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.SaveEventTTL != 3*time.Second {
		t.Errorf("SaveEventTTL = %v, want 3s", cfg.SaveEventTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GASTOS_BACKEND", "memory")
	t.Setenv("GASTOS_LOG_LEVEL", "debug")
	t.Setenv("GASTOS_SAVE_EVENT_TTL", "5s")

	cfg := Load()

	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want memory", cfg.DataBackend)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.SaveEventTTL != 5*time.Second {
		t.Errorf("SaveEventTTL = %v, want 5s", cfg.SaveEventTTL)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "unknown backend", mutate: func(c *Config) { c.DataBackend = "redis" }, wantErr: true},
		{name: "empty sqlite path", mutate: func(c *Config) { c.SQLiteDBPath = "" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "ttl too short", mutate: func(c *Config) { c.SaveEventTTL = 100 * time.Millisecond }, wantErr: true},
		{name: "ttl too long", mutate: func(c *Config) { c.SaveEventTTL = 2 * time.Minute }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: filepath.Join(t.TempDir(), "gastos.db"),
				LogLevel:     "info",
				SaveEventTTL: 3 * time.Second,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateHasNoSideEffects(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	cfg := &Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(dir, "gastos.db"),
		LogLevel:     "info",
		SaveEventTTL: 3 * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Validate() created %s", dir)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "warn"}
	if got := cfg.SlogLevel(); got != slog.LevelWarn {
		t.Errorf("SlogLevel() = %v, want warn", got)
	}
	cfg.LogLevel = "nonsense"
	if got := cfg.SlogLevel(); got != slog.LevelInfo {
		t.Errorf("SlogLevel() fallback = %v, want info", got)
	}
}
