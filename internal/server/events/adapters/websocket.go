// Package adapters connects the event broker to the WebSocket and SSE
// transports, encoding each event once per transport.
package adapters

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/agentstation/quotebook/internal/server/events"
	ws "github.com/agentstation/quotebook/internal/server/websocket"
)

// WebSocketSubscriber prepares each event once and broadcasts it to the hub.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a new WebSocket subscriber.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send broadcasts the prepared event.
func (w *WebSocketSubscriber) Send(event events.Event) error {
	msg, err := WSMessage(event)
	if err != nil {
		return err
	}
	w.hub.Broadcast(msg)
	return nil
}

// Close is a no-op; the hub owns its lifecycle.
func (w *WebSocketSubscriber) Close() error {
	return nil
}

// WSMessage encodes the whole event as one text frame shared by every
// client.
func WSMessage(event events.Event) (*websocket.PreparedMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return websocket.NewPreparedMessage(websocket.TextMessage, data)
}

// WSMessages encodes a greeting, skipping events that fail to encode.
func WSMessages(list ...events.Event) []*websocket.PreparedMessage {
	msgs := make([]*websocket.PreparedMessage, 0, len(list))
	for _, e := range list {
		if m, err := WSMessage(e); err == nil {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
