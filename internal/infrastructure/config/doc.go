// Package config provides 12-factor configuration management for the frame
// widget host.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Widget: default frame geometry, control labels, host page layout
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - WIDGET_DEFAULT_WIDTH, WIDGET_DEFAULT_HEIGHT, WIDGET_INSET
//   - WIDGET_PAGE_SHELL, WIDGET_MOUNT_SELECTOR, WIDGET_MAX_INSTANCES
//   - WIDGET_LABEL_NEW_TAB, WIDGET_LABEL_EXPAND, WIDGET_LABEL_COLLAPSE, WIDGET_LABEL_CLOSE
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
