// Package middleware provides observability for gridcell hosts.
//
// This package includes:
//   - a Prometheus collector for grid activity and HTTP requests
//   - OpenTelemetry HTTP middleware and span helpers
//
// # Prometheus Metrics
//
// NewMetrics registers the collectors on a registerer (the default
// registerer unless WithRegistry is given):
//
//	m := middleware.NewMetrics(middleware.WithNamespace("gridcell"))
//	g := grid.New(cols, grid.WithMetrics(m))
//
//	r := chi.NewRouter()
//	r.Use(m.Middleware)
//	r.Handle("/metrics", promhttp.Handler())
//
// Metrics collected:
//   - gridcell_cells_mounted_total: renderer instances mounted, by renderer
//   - gridcell_mount_errors_total: failed mounts, by renderer
//   - gridcell_renders_total / gridcell_render_duration_seconds
//   - gridcell_interactions_total: click events delivered, by column
//   - gridcell_dispatch_errors_total: rejected dispatches, by error code
//   - gridcell_http_requests_total / gridcell_http_request_duration_seconds
//   - gridcell_active_connections: open WebSocket connections
//
// All recording methods are safe on a nil *Metrics, so hosts can run
// without metrics.
//
// # OpenTelemetry
//
// OpenTelemetry wraps an http.Handler in a server span. StartSpan opens
// child spans for grid work (render, dispatch) on the global tracer
// provider:
//
//	ctx, span := middleware.StartSpan(ctx, "grid.dispatch",
//	    attribute.String("gridcell.hid", hid))
//	err := g.Dispatch(hid)
//	middleware.EndSpan(span, err)
package middleware
