package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Widget lifecycle metrics
	WidgetsActive    prometheus.Gauge
	WidgetsMounted   prometheus.Counter
	WidgetsDestroyed prometheus.Counter
	SnapshotsApplied prometheus.Counter
	ControlClicks    *prometheus.CounterVec
	Navigations      prometheus.Counter

	// Render stream metrics
	StreamSubscribers prometheus.Gauge
	StreamFrames      prometheus.Counter
}

// NewMetrics creates a metrics collector backed by its own registry, so
// several collectors can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framewidget_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "framewidget_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),

		WidgetsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "framewidget_widgets_active",
			Help: "Number of mounted widget instances",
		}),
		WidgetsMounted: factory.NewCounter(prometheus.CounterOpts{
			Name: "framewidget_widgets_mounted_total",
			Help: "Total number of widget instances mounted",
		}),
		WidgetsDestroyed: factory.NewCounter(prometheus.CounterOpts{
			Name: "framewidget_widgets_destroyed_total",
			Help: "Total number of widget instances destroyed",
		}),
		SnapshotsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "framewidget_snapshots_applied_total",
			Help: "Total number of configuration snapshots delivered to widgets",
		}),
		ControlClicks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framewidget_control_clicks_total",
				Help: "Control activations by control name",
			},
			[]string{"control"},
		),
		Navigations: factory.NewCounter(prometheus.CounterOpts{
			Name: "framewidget_navigations_total",
			Help: "Requests to open a frame address in a new browsing context",
		}),

		StreamSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "framewidget_stream_subscribers",
			Help: "Open render stream connections",
		}),
		StreamFrames: factory.NewCounter(prometheus.CounterOpts{
			Name: "framewidget_stream_frames_total",
			Help: "Rendered documents pushed to stream subscribers",
		}),
	}
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// WidgetMounted records a new instance
func (m *Metrics) WidgetMounted() {
	m.WidgetsMounted.Inc()
	m.WidgetsActive.Inc()
}

// WidgetDestroyed records an instance teardown
func (m *Metrics) WidgetDestroyed() {
	m.WidgetsDestroyed.Inc()
	m.WidgetsActive.Dec()
}

// SnapshotApplied records a configuration delivery
func (m *Metrics) SnapshotApplied() {
	m.SnapshotsApplied.Inc()
}

// ControlClicked records a control activation
func (m *Metrics) ControlClicked(control string) {
	m.ControlClicks.WithLabelValues(control).Inc()
}

// NavigationRequested records a new-tab navigation
func (m *Metrics) NavigationRequested() {
	m.Navigations.Inc()
}

// StreamOpened records a render stream connection
func (m *Metrics) StreamOpened() { m.StreamSubscribers.Inc() }

// StreamClosed records a render stream disconnect
func (m *Metrics) StreamClosed() { m.StreamSubscribers.Dec() }

// FramePushed records a document pushed to a stream
func (m *Metrics) FramePushed() { m.StreamFrames.Inc() }
