/*
Package monitoring provides metrics collection for the frame widget host.

# Overview

This package implements Prometheus-based metrics for the HTTP API and for the
widget instances the host manages.

# Features

- HTTP request metrics (throughput, latency) labelled by route template
- Widget lifecycle metrics (mounted, active, destroyed)
- Snapshot deliveries, control activations and navigations
- Render stream connections and pushed frames

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record widget events
	metrics.WidgetMounted()
	metrics.ControlClicked("expand")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
