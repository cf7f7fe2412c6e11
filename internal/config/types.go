package config

import "time"

// LogFormat selects how log lines are written.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// Config is the top-level efpview configuration, corresponding to .efpview.yml.
type Config struct {
	BarURL            string        `yaml:"bar_url" koanf:"bar_url"`
	RequestTimeout    time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" koanf:"requests_per_second"`
	StudiesTTL        time.Duration `yaml:"studies_ttl" koanf:"studies_ttl"`
	Port              int           `yaml:"port" koanf:"port"`
	AllowAllOrigins   bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	WidgetIdleTimeout time.Duration `yaml:"widget_idle_timeout" koanf:"widget_idle_timeout"`
	LogLevel          string        `yaml:"log_level" koanf:"log_level"`
	LogFormat         LogFormat     `yaml:"log_format" koanf:"log_format"`
	SpinnerURL        string        `yaml:"spinner_url" koanf:"spinner_url"`
	LogoURL           string        `yaml:"logo_url" koanf:"logo_url"`
}
