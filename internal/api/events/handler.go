package events

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Handler serves the event stream endpoint.
type Handler struct {
	broker            *Broker
	streamMaxDuration time.Duration
	keepaliveInterval time.Duration
}

// NewHandler creates a new events handler.
func NewHandler(broker *Broker, streamMaxDuration, keepaliveInterval time.Duration) *Handler {
	if streamMaxDuration == 0 {
		streamMaxDuration = 30 * time.Minute
	}
	if keepaliveInterval == 0 {
		keepaliveInterval = 15 * time.Second
	}
	return &Handler{
		broker:            broker,
		streamMaxDuration: streamMaxDuration,
		keepaliveInterval: keepaliveInterval,
	}
}

// Stream handles GET /api/v1/events - an SSE stream of conversation events.
// The connection is bounded by streamMaxDuration; clients reconnect.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sse := NewSSEWriter(w, flusher)
	if err := sse.SendRetry(3000); err != nil {
		return
	}

	ch, cancel := h.broker.Subscribe()
	defer cancel()

	ctx := r.Context()
	deadline := time.NewTimer(h.streamMaxDuration)
	defer deadline.Stop()
	keepalive := time.NewTicker(h.keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			// Lifetime bound reached; the retry hint reconnects the client.
			return
		case <-keepalive.C:
			if err := sse.SendComment("keepalive"); err != nil {
				return
			}
		case event, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("marshal event error: %v", err)
				continue
			}
			if err := sse.SendEvent(event.Type, string(data)); err != nil {
				return
			}
		}
	}
}
