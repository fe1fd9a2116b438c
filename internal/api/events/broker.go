// Package events streams conversation lifecycle events to connected clients
// over Server-Sent Events, so sidebars stay current without polling.
package events

import (
	"sync"
	"time"

	"github.com/good-yellow-bee/chatriver/internal/metrics"
)

// Event types published by the conversation handlers.
const (
	TypeCreated = "conversation.created"
	TypeRenamed = "conversation.renamed"
	TypeDeleted = "conversation.deleted"
)

// Event describes a conversation lifecycle change.
type Event struct {
	Type           string    `json:"type"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name,omitempty"`
	At             time.Time `json:"at"`
}

// subscriberBuffer bounds each subscriber channel. Slow clients drop events
// rather than block publishers.
const subscriberBuffer = 16

// Broker fans events out to subscribers.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned cancel function must be
// called when the subscriber goes away; it closes the channel.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	metrics.EventSubscribers.Inc()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
			metrics.EventSubscribers.Dec()
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber. Subscribers whose buffers
// are full miss the event.
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
