package events

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStream_DeliversEvents(t *testing.T) {
	broker := NewBroker()
	handler := NewHandler(broker, time.Minute, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/api/v1/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.Stream(rec, req)
		close(done)
	}()

	// Wait for the subscriber to register before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for broker.SubscriberCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	broker.Publish(Event{
		Type:           TypeCreated,
		ConversationID: "c1",
		UserID:         "u1",
		Name:           "Fresh chat",
		At:             time.Now(),
	})

	// Give the handler a moment to write, then close the stream.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "retry: 3000") {
		t.Errorf("stream missing retry hint:\n%s", body)
	}
	if !strings.Contains(body, "event: "+TypeCreated) {
		t.Errorf("stream missing created event:\n%s", body)
	}
	if !strings.Contains(body, `"conversation_id":"c1"`) {
		t.Errorf("stream missing event payload:\n%s", body)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", got)
	}
}

func TestStream_HonorsLifetimeBound(t *testing.T) {
	broker := NewBroker()
	handler := NewHandler(broker, 20*time.Millisecond, time.Minute)

	req := httptest.NewRequest("GET", "/api/v1/events", nil)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.Stream(rec, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end at its lifetime bound")
	}

	if broker.SubscriberCount() != 0 {
		t.Errorf("subscriber leaked after stream ended: %d", broker.SubscriberCount())
	}
}
