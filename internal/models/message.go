package models

import (
	"time"
)

// MessageRole identifies who produced a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single turn within a conversation.
type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversation_id"`
	Role           MessageRole `json:"role"`
	Content        string      `json:"content"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ParseRole converts a string to MessageRole. Unknown values map to user.
func ParseRole(s string) MessageRole {
	if s == "assistant" {
		return RoleAssistant
	}
	return RoleUser
}

// ValidRole reports whether s names a known message role.
func ValidRole(s string) bool {
	return s == string(RoleUser) || s == string(RoleAssistant)
}
