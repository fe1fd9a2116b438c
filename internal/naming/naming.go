// Package naming derives and validates conversation display names.
package naming

import (
	"strings"
	"time"
	"unicode"
)

const (
	// MaxTitleLength bounds generated display titles.
	MaxTitleLength = 50
	// MaxNameLength bounds user-assigned names at the persistence boundary.
	MaxNameLength = 100
	// minMessageLength is the shortest message worth deriving a title from.
	minMessageLength = 5
)

// casualOpeners are stripped from the start of a first message before the
// remainder becomes a title. Order is the tie-break order; only the first
// match counts, and it must be followed by whitespace.
var casualOpeners = []string{
	"hi",
	"hello",
	"hey",
	"please",
	"can you",
	"could you",
	"would you",
	"i need",
	"i want",
	"help me",
}

// questionOpeners are recognized but kept, so titles like
// "How to deploy X" read naturally.
var questionOpeners = []string{
	"tell me",
	"explain",
	"show me",
	"what is",
	"what are",
	"how do",
	"how to",
	"where is",
	"when is",
	"why",
}

// Engine turns raw first messages into conversation titles. It holds no
// state beyond a clock for the fallback path and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// New creates an Engine using the system clock.
func New() *Engine {
	return &Engine{now: time.Now}
}

// NewWithClock creates an Engine with a caller-supplied clock.
// Used by tests and by anything that needs reproducible fallback titles.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// GenerateTitle derives a display title from the user's first message.
// The result is never empty and never longer than MaxTitleLength runes;
// messages too short to carry meaning get a timestamp fallback title.
func (e *Engine) GenerateTitle(message string) string {
	trimmed := strings.TrimSpace(message)
	if runeLen(trimmed) < minMessageLength {
		return e.FallbackTitle()
	}

	title := stripOpener(trimmed)
	if runeLen(title) < minMessageLength {
		// Stripping left a degenerate fragment; keep the original.
		title = trimmed
	}

	title = capitalize(title)
	title = strings.TrimRight(title, "?")
	title = strings.TrimRight(title, ".")
	title = strings.TrimRight(title, "!")
	title = strings.TrimSpace(title)
	if title == "" {
		// All punctuation. Nothing left to name the conversation after.
		return e.FallbackTitle()
	}

	return TruncateAtBoundary(title, MaxTitleLength)
}

// FallbackTitle returns a timestamp-based default name, used when the first
// message is too short to derive a title from.
func (e *Engine) FallbackTitle() string {
	return "Chat started on " + e.now().Format("Jan 2, 3:04 PM")
}

// stripOpener removes a single leading conversational opener. Question-style
// openers are matched but deliberately left in place.
func stripOpener(s string) string {
	if _, ok := matchOpener(s, questionOpeners); ok {
		return s
	}
	if rest, ok := matchOpener(s, casualOpeners); ok {
		return rest
	}
	return s
}

// matchOpener checks s against each opener in order: a case-insensitive
// match anchored at position 0 and followed by at least one whitespace
// character. On a match it returns the remainder with that whitespace
// consumed.
func matchOpener(s string, openers []string) (string, bool) {
	for _, opener := range openers {
		if len(s) <= len(opener) {
			continue
		}
		if !strings.EqualFold(s[:len(opener)], opener) {
			continue
		}
		rest := s[len(opener):]
		stripped := strings.TrimLeftFunc(rest, unicode.IsSpace)
		if stripped == rest {
			// Opener not followed by whitespace ("hi," and the like);
			// treat it as part of the message.
			continue
		}
		return stripped, true
	}
	return s, false
}

// TruncateAtBoundary shortens text to at most max runes, preferring to cut
// at the last space that leaves room for the ellipsis. The boundary cut is
// only taken when that space sits past 60% of max, so a short first word
// does not collapse the whole title; otherwise the text is hard-cut to
// max-3 runes. Either way the truncated form ends in "..." and never
// exceeds max runes.
func TruncateAtBoundary(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	lastSpace := -1
	for i, r := range runes[:max-3] {
		if r == ' ' {
			lastSpace = i
		}
	}

	if lastSpace > max*6/10 {
		return string(runes[:lastSpace]) + "..."
	}
	return string(runes[:max-3]) + "..."
}

// capitalize upper-cases the first rune and leaves the rest untouched.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func runeLen(s string) int {
	return len([]rune(s))
}
