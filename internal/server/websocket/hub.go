// Package websocket pushes quote events to connected browsers.
//
// Messages are prepared once by the caller and shared by every client, so
// a broadcast costs one encoding regardless of how many browsers listen.
package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Hub tracks connected clients. A client that cannot keep up is
// disconnected rather than slowing the others down.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	stopped bool
	logger  *zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Run blocks until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	for c := range h.clients {
		close(c.send)
	}
	clear(h.clients)
	h.stopped = true
	h.mu.Unlock()
	h.logger.Debug().Msg("WebSocket hub shut down")
}

// Attach registers c with greeting queued ahead of any broadcast. It
// reports false once the hub has stopped.
func (h *Hub) Attach(c *Client, greeting ...*websocket.PreparedMessage) bool {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return false
	}
	for _, msg := range greeting {
		select {
		case c.send <- msg:
		default:
		}
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().Str("client_id", c.id).Int("total_clients", n).Msg("WebSocket client connected")
	return true
}

// Detach removes c and ends its write loop. Detaching twice is harmless.
func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Info().Str("client_id", c.id).Int("total_clients", n).Msg("WebSocket client disconnected")
	}
}

// Broadcast queues msg for every client without blocking.
func (h *Hub) Broadcast(msg *websocket.PreparedMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
			h.logger.Warn().Str("client_id", c.id).Msg("WebSocket client too slow, disconnected")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
