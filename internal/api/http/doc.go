// Package http exposes the widget host over a REST API built on Gin.
//
// Endpoints:
//   - Health: /health
//   - Instances: POST/GET /widgets, GET/DELETE /widgets/:id
//   - Rendering: /widgets/:id/document, /widgets/:id/outputs
//   - Configuration: PUT /widgets/:id/parameters
//   - Controls: POST /widgets/:id/controls/:control
//
// Host errors map to status codes in StatusFor: unknown or malformed
// instance IDs are 404, unknown controls 400, hidden controls 409, and a
// full host 503. Error bodies are {"error": "..."}.
//
// Example Usage:
//
//	handlers := http.NewHandlers(manager, logger)
//	handlers.Register(router)
package http
