// Package middleware provides the HTTP middleware stack for the widget host API.
//
// Middleware stack includes:
//   - RequestID: X-Request-ID tagging with google/uuid
//   - Logging: one zap entry per completed request
//   - CORS: cross-origin access for embedding pages
//   - RateLimit: per-IP token bucket rate limiting
//
// Rate Limiting:
//   - Per-IP limiters, forgotten after a few idle minutes
//   - Token bucket algorithm (golang.org/x/time/rate)
//   - Configurable RPS and burst capacity
//   - Global rate limiting option
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
