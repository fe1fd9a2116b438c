package store

import (
	"context"
	"sort"
	"sync"

	"github.com/good-yellow-bee/chatriver/internal/models"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs the server in
// single-process deployments and the handler tests.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*models.Conversation
	messages      map[string][]*models.Message // keyed by conversation ID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*models.Conversation),
		messages:      make(map[string][]*models.Message),
	}
}

// Ping implements Store. The store lives in-process, so only the caller's
// context can make it unreachable.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close implements Store. Nothing to release.
func (s *MemoryStore) Close() error {
	return nil
}

// Conversations returns the conversation repository.
func (s *MemoryStore) Conversations() ConversationRepository {
	return (*memoryConversations)(s)
}

// Messages returns the message repository.
func (s *MemoryStore) Messages() MessageRepository {
	return (*memoryMessages)(s)
}

type memoryConversations MemoryStore

func (s *memoryConversations) Create(ctx context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *conv
	s.conversations[conv.ID] = &copied
	return nil
}

func (s *memoryConversations) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, nil
	}
	copied := *conv
	return &copied, nil
}

func (s *memoryConversations) Update(ctx context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[conv.ID]; !ok {
		return nil
	}
	copied := *conv
	s.conversations[conv.ID] = &copied
	return nil
}

func (s *memoryConversations) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conversations, id)
	return nil
}

func (s *memoryConversations) ListByUser(ctx context.Context, userID string) ([]*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Conversation
	for _, conv := range s.conversations {
		if conv.UserID != userID {
			continue
		}
		copied := *conv
		result = append(result, &copied)
	}

	// Newest first, ID as tie-break so ordering is stable.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

type memoryMessages MemoryStore

func (s *memoryMessages) Append(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *msg
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], &copied)
	return nil
}

func (s *memoryMessages) ListByConversation(ctx context.Context, conversationID string) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[conversationID]
	result := make([]*models.Message, len(msgs))
	for i, m := range msgs {
		copied := *m
		result[i] = &copied
	}
	return result, nil
}

func (s *memoryMessages) DeleteByConversation(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, conversationID)
	return nil
}
