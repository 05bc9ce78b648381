package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/gridcell/pkg/cell"
	"github.com/vango-dev/gridcell/pkg/grid"
	"github.com/vango-dev/gridcell/pkg/middleware"
)

// ClickHandler reacts to a click on the event loop.
type ClickHandler func(g *grid.Grid, e cell.ClickEvent)

// Config holds preview server settings.
type Config struct {
	// Address is the host:port to listen on.
	Address string

	// Title is the page title.
	Title string

	// SocketPath is the WebSocket route. Default: "/ws".
	SocketPath string

	// MetricsPath is the Prometheus route. Default: "/metrics".
	// "-" disables it.
	MetricsPath string

	// Pretty indents the served HTML.
	Pretty bool

	// Metrics records HTTP and connection metrics. May be nil.
	Metrics *middleware.Metrics

	// Gatherer backs the metrics route. Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// OnClick is called on the event loop for every click event the grid
	// emits, after it has been logged. It may change g directly; the
	// table re-rendered after the click carries those changes to every
	// client. It must not call Server.Update, which would wait on the
	// loop it is running on.
	OnClick ClickHandler

	// CheckOrigin is passed to the WebSocket upgrader. Nil allows only
	// same-origin requests.
	CheckOrigin func(r *http.Request) bool

	// Timeouts

	// ReadTimeout is the maximum time to wait for a client message.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between pings. Must be shorter than
	// ReadTimeout. Default: 30 seconds.
	HeartbeatInterval time.Duration

	// ReadHeaderTimeout bounds reading HTTP request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown. Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Limits

	// MaxMessageSize is the maximum size of an incoming message.
	// Default: 4KB.
	MaxMessageSize int64

	// SendQueue is the per-connection outbound buffer. Default: 16.
	SendQueue int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:           "localhost:7070",
		Title:             "gridcell",
		SocketPath:        "/ws",
		MetricsPath:       "/metrics",
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		MaxMessageSize:    4 * 1024,
		SendQueue:         16,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.SocketPath == "" {
		c.SocketPath = d.SocketPath
	}
	switch c.MetricsPath {
	case "":
		c.MetricsPath = d.MetricsPath
	case "-":
		c.MetricsPath = ""
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.HeartbeatInterval == 0 || c.HeartbeatInterval >= c.ReadTimeout {
		c.HeartbeatInterval = c.ReadTimeout / 2
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.SendQueue == 0 {
		c.SendQueue = d.SendQueue
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	return c
}
