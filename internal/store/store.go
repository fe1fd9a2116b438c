// Package store provides conversation storage interfaces and an in-memory
// implementation. The managed backend sits behind these interfaces; the
// server only ever talks to repositories.
package store

import (
	"context"

	"github.com/good-yellow-bee/chatriver/internal/models"
)

// Store is the main interface for conversation data access.
type Store interface {
	// Ping verifies the store is reachable. Used by readiness checks.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error

	// Repository accessors
	Conversations() ConversationRepository
	Messages() MessageRepository
}

// ConversationRepository defines operations for conversation management.
type ConversationRepository interface {
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	Update(ctx context.Context, conv *models.Conversation) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Conversation, error)
}

// MessageRepository defines operations for messages within a conversation.
type MessageRepository interface {
	Append(ctx context.Context, msg *models.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]*models.Message, error)
	DeleteByConversation(ctx context.Context, conversationID string) error
}
