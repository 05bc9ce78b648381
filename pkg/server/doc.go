// Package server serves a grid as a live HTML page.
//
// The page is rendered on the server. A small client script forwards
// clicks on hydrated elements over a WebSocket; the server dispatches
// them to the grid on a single event loop and pushes the re-rendered
// table back to every connected client.
//
// Routes:
//
//	GET /         the grid page
//	GET /ws       WebSocket for click events and updates
//	GET /metrics  Prometheus metrics (when enabled)
//	GET /healthz  liveness check
//
// Wire format (JSON text frames):
//
//	client → server  {"type":"click","hid":"h3"}
//	server → client  {"type":"update","html":"<table …>"}
//	server → client  {"type":"error","code":"E202","message":"…"}
package server
