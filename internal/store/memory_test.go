package store

import (
	"context"
	"testing"
	"time"

	"github.com/good-yellow-bee/chatriver/internal/models"
)

func TestMemoryStore_ConversationLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	conv := &models.Conversation{
		ID:        "c1",
		UserID:    "u1",
		Name:      "First chat",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Conversations().Create(ctx, conv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Conversations().GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "First chat" {
		t.Fatalf("GetByID = %+v, want stored conversation", got)
	}

	// Mutating the returned copy must not affect the store.
	got.Name = "mutated"
	again, _ := s.Conversations().GetByID(ctx, "c1")
	if again.Name != "First chat" {
		t.Errorf("stored conversation changed through returned copy: %q", again.Name)
	}

	got.Name = "Renamed chat"
	if err := s.Conversations().Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := s.Conversations().GetByID(ctx, "c1")
	if updated.Name != "Renamed chat" {
		t.Errorf("Update not applied, name = %q", updated.Name)
	}

	if err := s.Conversations().Delete(ctx, "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, _ := s.Conversations().GetByID(ctx, "c1")
	if gone != nil {
		t.Errorf("conversation survived delete: %+v", gone)
	}
}

func TestMemoryStore_GetByID_Missing(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.Conversations().GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("GetByID of missing id = %+v, want nil", got)
	}
}

func TestMemoryStore_ListByUser_Ordering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	for i, conv := range []*models.Conversation{
		{ID: "old", UserID: "u1", Name: "Old", UpdatedAt: base},
		{ID: "new", UserID: "u1", Name: "New", UpdatedAt: base.Add(time.Hour)},
		{ID: "other", UserID: "u2", Name: "Other user", UpdatedAt: base.Add(2 * time.Hour)},
	} {
		conv.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.Conversations().Create(ctx, conv); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := s.Conversations().ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListByUser returned %d conversations, want 2", len(list))
	}
	if list[0].ID != "new" || list[1].ID != "old" {
		t.Errorf("ListByUser order = [%s, %s], want newest first", list[0].ID, list[1].ID)
	}
}

func TestMemoryStore_Messages(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i, content := range []string{"first", "second", "third"} {
		msg := &models.Message{
			ID:             string(rune('a' + i)),
			ConversationID: "c1",
			Role:           models.RoleUser,
			Content:        content,
			CreatedAt:      time.Now(),
		}
		if err := s.Messages().Append(ctx, msg); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	msgs, err := s.Messages().ListByConversation(ctx, "c1")
	if err != nil {
		t.Fatalf("ListByConversation: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[0].Content != "first" || msgs[2].Content != "third" {
		t.Errorf("messages out of append order: %q, %q, %q", msgs[0].Content, msgs[1].Content, msgs[2].Content)
	}

	if err := s.Messages().DeleteByConversation(ctx, "c1"); err != nil {
		t.Fatalf("DeleteByConversation: %v", err)
	}
	msgs, _ = s.Messages().ListByConversation(ctx, "c1")
	if len(msgs) != 0 {
		t.Errorf("messages survived delete: %d", len(msgs))
	}
}

func TestMemoryStore_Ping(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Ping(ctx); err == nil {
		t.Error("Ping with canceled context should fail")
	}
}
