package events

import (
	"testing"
	"time"
)

func TestBroker_PublishSubscribe(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe()
	defer cancel()

	event := Event{
		Type:           TypeRenamed,
		ConversationID: "c1",
		UserID:         "u1",
		Name:           "New name",
		At:             time.Now(),
	}
	b.Publish(event)

	select {
	case got := <-ch:
		if got.Type != TypeRenamed || got.ConversationID != "c1" {
			t.Errorf("received %+v, want published event", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBroker_CancelClosesChannel(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe()

	if b.SubscriberCount() != 1 {
		t.Fatalf("subscriber count = %d, want 1", b.SubscriberCount())
	}

	cancel()
	if b.SubscriberCount() != 0 {
		t.Errorf("subscriber count after cancel = %d, want 0", b.SubscriberCount())
	}

	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}

	// Second cancel must be a no-op.
	cancel()

	// Publishing with no subscribers must not panic.
	b.Publish(Event{Type: TypeDeleted, ConversationID: "c1"})
}

func TestBroker_SlowSubscriberDropsEvents(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe()
	defer cancel()

	// Overfill the subscriber buffer; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			b.Publish(Event{Type: TypeCreated, ConversationID: "c1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	if got := len(ch); got != subscriberBuffer {
		t.Errorf("buffered events = %d, want %d", got, subscriberBuffer)
	}
}
