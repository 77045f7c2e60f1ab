package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/framewidget/internal/widget"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Widget    WidgetConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	// AllowedOrigins limits which embedding pages may call the API; empty
	// allows any origin.
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// WidgetConfig holds frame widget defaults and the host page layout.
type WidgetConfig struct {
	DefaultWidth  string `envconfig:"WIDGET_DEFAULT_WIDTH" default:"100%"`
	DefaultHeight int    `envconfig:"WIDGET_DEFAULT_HEIGHT" default:"300"`
	Inset         int    `envconfig:"WIDGET_INSET" default:"10"`
	PageShell     string `envconfig:"WIDGET_PAGE_SHELL" default:""`
	ShellSource   string `envconfig:"WIDGET_PAGE_SHELL_SOURCE" default:""` // file path or http(s) URL
	MountSelector string `envconfig:"WIDGET_MOUNT_SELECTOR" default:"#frame-root"`
	MaxInstances  int    `envconfig:"WIDGET_MAX_INSTANCES" default:"1000"`

	LabelNewTab   string `envconfig:"WIDGET_LABEL_NEW_TAB" default:"Open in New Tab"`
	LabelExpand   string `envconfig:"WIDGET_LABEL_EXPAND" default:"Open Full Page"`
	LabelCollapse string `envconfig:"WIDGET_LABEL_COLLAPSE" default:"Exit Full Page"`
	LabelClose    string `envconfig:"WIDGET_LABEL_CLOSE" default:"Close"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// TracingConfig holds request tracing configuration.
type TracingConfig struct {
	Enabled bool `envconfig:"TRACING_ENABLED" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	labels := widget.DefaultLabels()
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Widget: WidgetConfig{
			DefaultWidth:  "100%",
			DefaultHeight: 300,
			Inset:         10,
			MountSelector: "#frame-root",
			MaxInstances:  1000,
			LabelNewTab:   labels.NewTab,
			LabelExpand:   labels.Expand,
			LabelCollapse: labels.Collapse,
			LabelClose:    labels.Close,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Frame converts the widget section into a widget configuration.
func (w WidgetConfig) Frame() widget.Config {
	return widget.Config{
		DefaultWidth:  w.DefaultWidth,
		DefaultHeight: w.DefaultHeight,
		Inset:         w.Inset,
		Labels: widget.Labels{
			NewTab:   w.LabelNewTab,
			Expand:   w.LabelExpand,
			Collapse: w.LabelCollapse,
			Close:    w.LabelClose,
		},
	}.Normalize()
}
