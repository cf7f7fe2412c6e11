package config

import (
	"time"

	"github.com/ziadkadry99/efp-view/internal/bar"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".efpview.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BarURL:            bar.DefaultBaseURL,
		RequestTimeout:    30 * time.Second,
		RequestsPerSecond: 5,
		StudiesTTL:        time.Hour,
		Port:              8080,
		AllowAllOrigins:   false,
		WidgetIdleTimeout: 30 * time.Minute,
		LogLevel:          "info",
		LogFormat:         LogFormatConsole,
		SpinnerURL:        bar.DefaultSpinnerURL,
		LogoURL:           bar.DefaultLogoURL,
	}
}
