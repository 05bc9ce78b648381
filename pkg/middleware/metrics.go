package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/gridcell/internal/errors"
)

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "gridcell").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collector.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "gridcell",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the gridcell Prometheus collectors.
type Metrics struct {
	cellsMounted      *prometheus.CounterVec
	mountErrors       *prometheus.CounterVec
	renders           prometheus.Counter
	renderDuration    prometheus.Histogram
	interactions      *prometheus.CounterVec
	dispatchErrors    *prometheus.CounterVec
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	activeConnections prometheus.Gauge
}

// NewMetrics creates and registers the collectors. Registering twice on
// the same registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}
	histogramOpts := func(name, help string) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}
	}

	return &Metrics{
		cellsMounted: factory.NewCounterVec(
			counterOpts("cells_mounted_total", "Total renderer instances mounted"),
			[]string{"renderer"}),
		mountErrors: factory.NewCounterVec(
			counterOpts("mount_errors_total", "Total renderer mounts that failed"),
			[]string{"renderer"}),
		renders: factory.NewCounter(
			counterOpts("renders_total", "Total grid renders")),
		renderDuration: factory.NewHistogram(
			histogramOpts("render_duration_seconds", "Grid render duration in seconds")),
		interactions: factory.NewCounterVec(
			counterOpts("interactions_total", "Total click events delivered to listeners"),
			[]string{"column"}),
		dispatchErrors: factory.NewCounterVec(
			counterOpts("dispatch_errors_total", "Total dispatches that found no handler"),
			[]string{"code"}),
		requests: factory.NewCounterVec(
			counterOpts("http_requests_total", "Total HTTP requests by route and status"),
			[]string{"route", "status"}),
		requestDuration: factory.NewHistogramVec(
			histogramOpts("http_request_duration_seconds", "HTTP request duration in seconds"),
			[]string{"route"}),
		activeConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_connections",
			Help:        "Number of open WebSocket connections",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordMount records a mounted renderer instance.
func (m *Metrics) RecordMount(renderer string) {
	if m != nil {
		m.cellsMounted.WithLabelValues(renderer).Inc()
	}
}

// RecordMountError records a failed mount.
func (m *Metrics) RecordMountError(renderer string) {
	if m != nil {
		m.mountErrors.WithLabelValues(renderer).Inc()
	}
}

// ObserveRender records one grid render and its duration.
func (m *Metrics) ObserveRender(d time.Duration) {
	if m != nil {
		m.renders.Inc()
		m.renderDuration.Observe(d.Seconds())
	}
}

// RecordInteraction records a click event delivered for column.
func (m *Metrics) RecordInteraction(column string) {
	if m != nil {
		m.interactions.WithLabelValues(column).Inc()
	}
}

// RecordDispatchError records a failed dispatch, labelled by error code
// so messages cannot blow up label cardinality.
func (m *Metrics) RecordDispatchError(err error) {
	if m == nil || err == nil {
		return
	}
	code := errors.Code(err)
	if code == "" {
		code = "internal"
	}
	m.dispatchErrors.WithLabelValues(code).Inc()
}

// ConnectionOpened increments the open connection gauge.
func (m *Metrics) ConnectionOpened() {
	if m != nil {
		m.activeConnections.Inc()
	}
}

// ConnectionClosed decrements the open connection gauge.
func (m *Metrics) ConnectionClosed() {
	if m != nil {
		m.activeConnections.Dec()
	}
}

// Middleware records request counts and durations, labelled by the chi
// route pattern so path parameters do not create new series.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

// routePattern returns the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
