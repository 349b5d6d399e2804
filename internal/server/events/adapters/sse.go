package adapters

import (
	"encoding/json"

	"github.com/agentstation/quotebook/internal/server/events"
	"github.com/agentstation/quotebook/internal/server/sse"
)

// SSESubscriber encodes each event once and hands the frame to the
// broadcaster.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a new SSE subscriber.
func NewSSESubscriber(broadcaster *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: broadcaster}
}

// Send broadcasts the event's frame.
func (s *SSESubscriber) Send(event events.Event) error {
	frame, err := SSEFrame(event)
	if err != nil {
		return err
	}
	s.broadcaster.Broadcast(frame)
	return nil
}

// Close is a no-op; the broadcaster owns its streams.
func (s *SSESubscriber) Close() error {
	return nil
}

// SSEFrame encodes event as an SSE frame named after its type, so
// browsers can listen with addEventListener("quote.added", ...). The data
// line holds the payload only.
func SSEFrame(event events.Event) (sse.Frame, error) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return sse.Frame{}, err
	}
	return sse.Frame{Name: string(event.Type), ID: event.ID, Data: data}, nil
}

// SSEFrames encodes a greeting, skipping events that fail to encode.
func SSEFrames(list ...events.Event) []sse.Frame {
	frames := make([]sse.Frame, 0, len(list))
	for _, e := range list {
		if f, err := SSEFrame(e); err == nil {
			frames = append(frames, f)
		}
	}
	return frames
}
