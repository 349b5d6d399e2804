package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/agentstation/quotebook/internal/server/events"
	"github.com/agentstation/quotebook/internal/server/events/adapters"
	ws "github.com/agentstation/quotebook/internal/server/websocket"
)

// greeting is what a new stream sees first: the collection's size and
// filter, then the status message if one is still visible.
func (h *Handlers) greeting(clientID string) []events.Event {
	list := []events.Event{events.Connected(clientID, len(h.client.Quotes()), h.client.Filter())}
	if entry, ok := h.board.Current(); ok {
		list = append(list, events.Status(entry))
	}
	return list
}

// HandleWebSocket handles GET /ws.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(uuid.NewString(), h.wsHub, conn)
	if !h.wsHub.Attach(client, adapters.WSMessages(h.greeting(client.ID())...)...) {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandleSSE handles GET /events.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.Serve(w, r, adapters.SSEFrames(h.greeting(uuid.NewString())...)...)
}
