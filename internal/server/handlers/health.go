package handlers

import (
	"net/http"

	"github.com/agentstation/quotebook/internal/server/response"
)

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":            "healthy",
		"service":           "quotebook",
		"version":           h.version,
		"quotes":            len(h.client.Quotes()),
		"cache_items":       h.cache.ItemCount(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}

// HandleStatus handles GET /status. The message is empty once the last
// sync status has expired.
func (h *Handlers) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	entry, ok := h.board.Current()
	if !ok {
		response.OK(w, map[string]string{"message": ""})
		return
	}
	response.OK(w, entry)
}
