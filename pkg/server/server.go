package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/gridcell/internal/errors"
	"github.com/vango-dev/gridcell/pkg/cell"
	"github.com/vango-dev/gridcell/pkg/grid"
	"github.com/vango-dev/gridcell/pkg/middleware"
	"github.com/vango-dev/gridcell/pkg/render"
)

// ErrClosed is returned by operations on a closed server.
var ErrClosed = stderrors.New("server: closed")

// Server serves one grid to any number of browsers.
//
// Every grid access runs on a single event loop goroutine, so the grid
// itself never needs locking.
type Server struct {
	config   Config
	grid     *grid.Grid
	router   chi.Router
	upgrader websocket.Upgrader
	logger   *slog.Logger

	ops     chan func()
	done    chan struct{}
	closeMu sync.Once

	connMu sync.Mutex
	conns  map[*conn]struct{}

	httpServer *http.Server
}

// New creates a server for g and starts its event loop. The server takes
// ownership of g: callers must go through Update to touch it afterwards.
func New(g *grid.Grid, config Config) *Server {
	config = config.withDefaults()

	s := &Server{
		config: config,
		grid:   g,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: slog.Default().With("component", "server"),
		ops:    make(chan func()),
		done:   make(chan struct{}),
		conns:  make(map[*conn]struct{}),
	}

	g.OnClick(s.handleClick)
	s.router = s.routes()

	go s.loop()
	return s
}

// routes builds the chi router.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if s.config.Metrics != nil {
		r.Use(s.config.Metrics.Middleware)
	}
	r.Use(middleware.OpenTelemetry(
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != s.config.SocketPath
		}),
	))

	r.Get("/", s.handlePage)
	r.Get(s.config.SocketPath, s.handleSocket)
	r.Get("/healthz", s.handleHealth)
	if s.config.MetricsPath != "" {
		r.Method(http.MethodGet, s.config.MetricsPath,
			promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// loop runs queued operations until Close.
func (s *Server) loop() {
	for {
		select {
		case fn := <-s.ops:
			fn()
		case <-s.done:
			return
		}
	}
}

// do runs fn on the event loop and waits for it to finish.
func (s *Server) do(ctx context.Context, fn func()) error {
	var panicErr error
	finished := make(chan struct{})
	op := func() {
		defer close(finished)
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("event loop panic", "panic", r, "stack", string(debug.Stack()))
				panicErr = fmt.Errorf("server: operation panicked: %v", r)
			}
		}()
		fn()
	}
	select {
	case s.ops <- op:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return panicErr
}

// Update runs fn against the grid on the event loop and, when fn
// succeeds, pushes the re-rendered grid to every client. Update blocks
// until the loop is free, so it must not be called from fn or from
// Config.OnClick.
func (s *Server) Update(ctx context.Context, fn func(g *grid.Grid) error) error {
	var (
		fnErr error
		html  string
	)
	err := s.do(ctx, func() {
		if fnErr = fn(s.grid); fnErr != nil {
			return
		}
		html, fnErr = s.renderTable(ctx)
	})
	if err != nil {
		return err
	}
	if fnErr != nil {
		return fnErr
	}
	s.broadcast(ServerMessage{Type: TypeUpdate, HTML: html})
	return nil
}

// handleClick is the grid's click listener. It runs on the event loop.
func (s *Server) handleClick(e cell.ClickEvent) {
	s.logger.Info("cell clicked", "row", e.RowID, "column", e.Column, "value", e.Value)
	if s.config.OnClick != nil {
		s.config.OnClick(s.grid, e)
	}
}

// renderTable renders the grid to HTML. Must run on the event loop.
func (s *Server) renderTable(ctx context.Context) (string, error) {
	r := render.NewRenderer(render.RendererConfig{Pretty: s.config.Pretty})
	return r.RenderToString(s.grid.RenderContext(ctx))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var (
		html      []byte
		renderErr error
	)
	err := s.do(r.Context(), func() {
		var buf bytes.Buffer
		rr := render.NewRenderer(render.RendererConfig{Pretty: s.config.Pretty})
		renderErr = rr.RenderPage(&buf, render.PageData{
			Body:       s.grid.RenderContext(r.Context()),
			Title:      s.config.Title,
			SocketPath: s.config.SocketPath,
		})
		html = buf.Bytes()
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	select {
	case <-s.done:
		http.Error(w, "closed", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// dispatch handles one click from a client. On success every client
// receives the new table; on failure only the sender gets the error.
func (s *Server) dispatch(ctx context.Context, c *conn, hid string) {
	var (
		dispatchErr error
		html        string
	)
	err := s.do(ctx, func() {
		if dispatchErr = s.grid.DispatchContext(ctx, hid); dispatchErr != nil {
			return
		}
		html, dispatchErr = s.renderTable(ctx)
	})
	if err == nil {
		err = dispatchErr
	}
	if err != nil {
		s.logger.Warn("dispatch failed", "hid", hid, "error", err)
		c.send(errorMessage(err))
		return
	}
	s.broadcast(ServerMessage{Type: TypeUpdate, HTML: html})
}

func (s *Server) broadcast(msg ServerMessage) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	for c := range s.conns {
		c.send(msg)
	}
}

func (s *Server) addConn(c *conn) {
	s.connMu.Lock()
	s.conns[c] = struct{}{}
	s.connMu.Unlock()
	s.config.Metrics.ConnectionOpened()
}

func (s *Server) removeConn(c *conn) {
	s.connMu.Lock()
	_, ok := s.conns[c]
	delete(s.conns, c)
	s.connMu.Unlock()
	if ok {
		s.config.Metrics.ConnectionClosed()
	}
}

// ConnectionCount returns the number of open WebSocket connections.
func (s *Server) ConnectionCount() int {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return len(s.conns)
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil && err != http.ErrServerClosed {
			return errors.New("E401").Wrap(err).WithDetailf("Could not listen on %s.", s.config.Address)
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the HTTP server, closes every connection and
// stops the event loop.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	var err error
	if s.httpServer != nil {
		if err = s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
		}
	}
	s.Close()
	if err == nil {
		s.logger.Info("server shutdown complete")
	}
	return err
}

// Close closes every connection and stops the event loop. The grid's
// renderer instances are destroyed. Close is idempotent.
func (s *Server) Close() {
	s.closeMu.Do(func() {
		s.connMu.Lock()
		conns := make([]*conn, 0, len(s.conns))
		for c := range s.conns {
			conns = append(conns, c)
		}
		s.connMu.Unlock()
		for _, c := range conns {
			c.close()
		}

		// Waits for any in-flight operation before the loop exits.
		_ = s.do(context.Background(), s.grid.Close)
		close(s.done)
	})
}
