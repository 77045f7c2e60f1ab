package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// Trace propagation headers, kept in sync with the tracing package.
const (
	traceHeader = "X-Trace-ID"
	spanHeader  = "X-Span-ID"
)

// DefaultCORSConfig returns the CORS configuration for embedding hosts. Any
// origin may drive the API; credentials are not shared.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Content-Length",
			"Accept",
			"Origin",
			"Cache-Control",
			"X-Requested-With",
			RequestIDHeader,
			traceHeader,
			spanHeader,
		},
		ExposeHeaders:    []string{RequestIDHeader, traceHeader, spanHeader, "ETag"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

// WithOrigins restricts the configuration to the given origins. An empty
// list or a "*" entry keeps every origin allowed.
func (c CORSConfig) WithOrigins(origins []string) CORSConfig {
	var kept []string
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return c
		}
		if o != "" {
			kept = append(kept, o)
		}
	}
	if len(kept) > 0 {
		c.AllowOrigins = kept
	}
	return c
}

// CORS creates a CORS middleware with the provided configuration.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
