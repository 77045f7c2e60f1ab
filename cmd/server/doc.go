// Package main runs the frame widget host.
//
// The host mounts frame widgets into server-side page documents and exposes
// them over HTTP: clients deliver parameter snapshots, click the widget's
// controls, fetch the rendered page, and subscribe to re-renders over
// WebSocket.
//
// Configuration:
//   - Environment variables (PORT, HOST, LOG_*, RATE_LIMIT_*, WIDGET_*)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown; every mounted widget is destroyed
package main
