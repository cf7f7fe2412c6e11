package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/efp-view/internal/bar"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BarURL != bar.DefaultBaseURL {
		t.Errorf("expected default bar_url %q, got %q", bar.DefaultBaseURL, cfg.BarURL)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.StudiesTTL != time.Hour {
		t.Errorf("expected default studies_ttl 1h, got %s", cfg.StudiesTTL)
	}
	if cfg.LogFormat != LogFormatConsole {
		t.Errorf("expected default log_format %q, got %q", LogFormatConsole, cfg.LogFormat)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.efpview.yml")

	original := DefaultConfig()
	original.BarURL = "http://localhost:9000"
	original.Port = 9090
	original.StudiesTTL = 15 * time.Minute
	original.RequestsPerSecond = 2.5
	original.LogFormat = LogFormatJSON

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.BarURL != original.BarURL {
		t.Errorf("bar_url: got %q, want %q", loaded.BarURL, original.BarURL)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.StudiesTTL != original.StudiesTTL {
		t.Errorf("studies_ttl: got %s, want %s", loaded.StudiesTTL, original.StudiesTTL)
	}
	if loaded.RequestsPerSecond != original.RequestsPerSecond {
		t.Errorf("requests_per_second: got %f, want %f", loaded.RequestsPerSecond, original.RequestsPerSecond)
	}
	if loaded.LogFormat != original.LogFormat {
		t.Errorf("log_format: got %q, want %q", loaded.LogFormat, original.LogFormat)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.BarURL != bar.DefaultBaseURL {
		t.Errorf("expected default bar_url, got %q", cfg.BarURL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("EFPVIEW_PORT", "7070")
	t.Setenv("EFPVIEW_STUDIES_TTL", "5m")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 7070 {
		t.Errorf("env override failed: got port %d, want 7070", loaded.Port)
	}
	if loaded.StudiesTTL != 5*time.Minute {
		t.Errorf("env override failed: got studies_ttl %s, want 5m", loaded.StudiesTTL)
	}
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty bar_url", func(c *Config) { c.BarURL = "" }},
		{"relative bar_url", func(c *Config) { c.BarURL = "bar.utoronto.ca" }},
		{"ftp bar_url", func(c *Config) { c.BarURL = "ftp://bar.utoronto.ca" }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"negative rps", func(c *Config) { c.RequestsPerSecond = -1 }},
		{"negative ttl", func(c *Config) { c.StudiesTTL = -time.Second }},
		{"negative idle", func(c *Config) { c.WidgetIdleTimeout = -time.Second }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
