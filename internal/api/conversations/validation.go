package conversations

import (
	"errors"
	"strings"

	"github.com/good-yellow-bee/chatriver/internal/models"
	"github.com/good-yellow-bee/chatriver/internal/naming"
)

func ValidateUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("user_id is required")
	}
	return nil
}

// ValidateRename checks a user-assigned conversation name. Length and
// character rules live in the naming package.
func ValidateRename(name string) error {
	return naming.ValidateName(name)
}

func ValidateMessage(role, content string) error {
	if !models.ValidRole(role) {
		return errors.New("role must be user or assistant")
	}
	if strings.TrimSpace(content) == "" {
		return errors.New("content is required")
	}
	return nil
}
