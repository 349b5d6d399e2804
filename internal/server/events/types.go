// Package events fans quote changes out to the server's real-time
// transports. Client hooks publish to a Broker, and each transport
// (WebSocket, SSE) subscribes to it.
package events

import (
	"time"

	"github.com/agentstation/quotebook/internal/status"
	"github.com/agentstation/quotebook/pkg/quotes"
	"github.com/agentstation/quotebook/pkg/reconciler"
)

// EventType names an event on the wire. SSE uses it as the event name.
type EventType string

// Event types.
const (
	// QuoteAdded is published for each quote appended by add, import or sync.
	QuoteAdded EventType = "quote.added"

	// QuoteUpdated is published when a sync overwrites a category.
	QuoteUpdated EventType = "quote.updated"

	// QuotesSynced is published after every sync with its report.
	QuotesSynced EventType = "quotes.synced"

	// StatusShown replays the visible status message to a new client.
	StatusShown EventType = "status"

	// ClientConnected greets a transport client when it connects.
	ClientConnected EventType = "client.connected"
)

// Event is a quote event. ID is the sync run for sync events; the broker
// numbers the rest.
type Event struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// QuotePayload carries an added quote.
type QuotePayload struct {
	Quote quotes.Quote `json:"quote"`
}

// UpdatePayload carries a category overwrite.
type UpdatePayload struct {
	Old quotes.Quote `json:"old_quote"`
	New quotes.Quote `json:"new_quote"`
}

// SyncPayload carries a sync report and its status line.
type SyncPayload struct {
	Message string             `json:"message"`
	Report  *reconciler.Report `json:"report"`
}

// ConnectedPayload tells a new client where the collection stands.
type ConnectedPayload struct {
	ClientID string `json:"client_id"`
	Quotes   int    `json:"quotes"`
	Filter   string `json:"filter"`
}

// Added builds a QuoteAdded event.
func Added(q quotes.Quote) Event {
	return newEvent(QuoteAdded, "", QuotePayload{Quote: q})
}

// Updated builds a QuoteUpdated event.
func Updated(old, updated quotes.Quote) Event {
	return newEvent(QuoteUpdated, "", UpdatePayload{Old: old, New: updated})
}

// Synced builds a QuotesSynced event identified by the report's run.
func Synced(report *reconciler.Report) Event {
	return newEvent(QuotesSynced, report.RunID, SyncPayload{
		Message: report.Message(),
		Report:  report,
	})
}

// Status builds the replay of a visible status entry.
func Status(entry status.Entry) Event {
	return newEvent(StatusShown, entry.RunID, entry)
}

// Connected builds the greeting for a new client.
func Connected(clientID string, count int, filter string) Event {
	return newEvent(ClientConnected, "", ConnectedPayload{
		ClientID: clientID,
		Quotes:   count,
		Filter:   filter,
	})
}

func newEvent(t EventType, id string, data any) Event {
	return Event{Type: t, ID: id, Timestamp: time.Now().UTC(), Data: data}
}
