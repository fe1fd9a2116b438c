package naming

import (
	"errors"
	"strings"
)

// Validation failures for user-assigned conversation names. The messages are
// user-facing; rename handlers return them verbatim.
var (
	ErrEmptyName         = errors.New("Conversation name cannot be empty")
	ErrNameTooLong       = errors.New("Conversation name must be 100 characters or less")
	ErrInvalidCharacters = errors.New("Conversation name contains invalid characters")
)

// reservedChars are rejected in names so they stay safe to render and to
// hand to filesystems and URLs downstream.
const reservedChars = `<>:"/\|?*`

// ValidateName checks a user-assigned conversation name. It trims before
// checking but does not return the trimmed value; callers run CleanName
// before persisting. A nil return means the name is acceptable.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	if runeLen(trimmed) > MaxNameLength {
		return ErrNameTooLong
	}
	for _, r := range trimmed {
		if r < 32 || strings.ContainsRune(reservedChars, r) {
			return ErrInvalidCharacters
		}
	}
	return nil
}

// CleanName normalizes a name for storage: trims, collapses every whitespace
// run to a single space, and hard-truncates to MaxNameLength runes. Unlike
// TruncateAtBoundary there is no ellipsis and no word-boundary preference;
// this feeds persistence, not display. All-whitespace input cleans to "",
// which is why callers validate first.
func CleanName(name string) string {
	cleaned := strings.Join(strings.Fields(name), " ")
	runes := []rune(cleaned)
	if len(runes) > MaxNameLength {
		return string(runes[:MaxNameLength])
	}
	return cleaned
}
