// Package handlers provides the HTTP handlers of the quotebook server.
package handlers

import (
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/quotebook"
	"github.com/agentstation/quotebook/internal/server/cache"
	"github.com/agentstation/quotebook/internal/server/sse"
	ws "github.com/agentstation/quotebook/internal/server/websocket"
	"github.com/agentstation/quotebook/internal/status"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	client         quotebook.Client
	board          *status.Board
	cache          *cache.Cache
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	version        string
}

// New creates a new Handlers instance.
func New(
	client quotebook.Client,
	board *status.Board,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	version string,
) *Handlers {
	return &Handlers{
		client:         client,
		board:          board,
		cache:          cache,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		version:        version,
	}
}
