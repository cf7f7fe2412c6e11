package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (EFPVIEW_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: EFPVIEW_BAR_URL -> bar_url, etc.
	if err := k.Load(env.Provider("EFPVIEW_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "EFPVIEW_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogFormats is the set of recognized log_format values.
var validLogFormats = map[LogFormat]bool{
	LogFormatConsole: true,
	LogFormatJSON:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.BarURL == "" {
		return fmt.Errorf("bar_url is required")
	}
	u, err := url.Parse(c.BarURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid bar_url %q: must be an absolute http(s) URL", c.BarURL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative")
	}

	if c.StudiesTTL < 0 {
		return fmt.Errorf("studies_ttl must be non-negative")
	}

	if c.WidgetIdleTimeout < 0 {
		return fmt.Errorf("widget_idle_timeout must be non-negative")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log_level %q", c.LogLevel)
		}
	}

	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be one of console, json", c.LogFormat)
	}

	return nil
}
