package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// conn is one browser connection. Reads happen on readLoop; every write
// goes through the send queue and writeLoop.
type conn struct {
	server *Server
	ws     *websocket.Conn
	logger *slog.Logger

	out       chan ServerMessage
	done      chan struct{}
	closeOnce sync.Once
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &conn{
		server: s,
		ws:     ws,
		logger: s.logger.With("conn", chimw.GetReqID(r.Context()), "remote", r.RemoteAddr),
		out:    make(chan ServerMessage, s.config.SendQueue),
		done:   make(chan struct{}),
	}
	s.addConn(c)
	c.logger.Debug("connection opened")

	go c.writeLoop()
	c.readLoop()
}

// readLoop reads client messages until the connection fails or closes.
func (c *conn) readLoop() {
	defer c.close()

	cfg := c.server.config
	c.ws.SetReadLimit(cfg.MaxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Error("read error", "error", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))

		msg, err := decodeClientMessage(data)
		if err != nil {
			c.logger.Warn("invalid message", "error", err)
			c.send(errorMessage(err))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.WriteTimeout)
		c.server.dispatch(ctx, c, msg.HID)
		cancel()
	}
}

// writeLoop drains the send queue and sends heartbeats.
func (c *conn) writeLoop() {
	cfg := c.server.config
	ticker := time.NewTicker(cfg.HeartbeatInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg := <-c.out:
			data, err := json.Marshal(msg)
			if err != nil {
				c.logger.Error("encode error", "error", err)
				continue
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(cfg.WriteTimeout)
			if err := c.ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.logger.Debug("ping error", "error", err)
				return
			}

		case <-c.done:
			return
		}
	}
}

// send queues msg. A client that cannot keep up is disconnected rather
// than allowed to block the broadcaster.
func (c *conn) send(msg ServerMessage) {
	select {
	case <-c.done:
	case c.out <- msg:
	default:
		c.logger.Warn("send queue full, closing connection")
		go c.close()
	}
}

// close tears the connection down once.
func (c *conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.server.removeConn(c)
		deadline := time.Now().Add(time.Second)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = c.ws.Close()
		c.logger.Debug("connection closed")
	})
}
