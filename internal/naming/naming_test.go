package naming

import (
	"strings"
	"testing"
	"time"
)

// fixedClock returns a clock pinned to Jan 20, 2:30 PM.
func fixedClock() time.Time {
	return time.Date(2024, time.January, 20, 14, 30, 0, 0, time.UTC)
}

func TestEngine_GenerateTitle(t *testing.T) {
	engine := NewWithClock(fixedClock)

	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{
			name:     "plain message is capitalized",
			message:  "deploy the staging cluster",
			expected: "Deploy the staging cluster",
		},
		{
			name:     "casual opener is stripped",
			message:  "please restart the server",
			expected: "Restart the server",
		},
		{
			name:     "hi opener is stripped",
			message:  "hi there everyone",
			expected: "There everyone",
		},
		{
			name:     "two-word opener is stripped",
			message:  "can you explain how transformers work",
			expected: "Explain how transformers work",
		},
		{
			name:     "only the first opener is stripped",
			message:  "could you please check the logs",
			expected: "Please check the logs",
		},
		{
			name:     "question opener is preserved",
			message:  "how to deploy with docker",
			expected: "How to deploy with docker",
		},
		{
			name:     "what-is opener is preserved",
			message:  "what is a goroutine",
			expected: "What is a goroutine",
		},
		{
			name:     "opener match is case-insensitive",
			message:  "HELLO what broke overnight",
			expected: "What broke overnight",
		},
		{
			name:     "opener followed by comma is not stripped",
			message:  "hi, can you explain how transformers work in machine learning models today",
			expected: "Hi, can you explain how transformers work in...",
		},
		{
			name:     "degenerate fragment reverts to original",
			message:  "hi abc",
			expected: "Hi abc",
		},
		{
			name:     "opener without trailing text is kept",
			message:  "hello!",
			expected: "Hello",
		},
		{
			name:     "trailing question marks stripped",
			message:  "what is the meaning of life???",
			expected: "What is the meaning of life",
		},
		{
			name:     "trailing periods stripped",
			message:  "check the deploy pipeline...",
			expected: "Check the deploy pipeline",
		},
		{
			name:     "trailing exclamations stripped",
			message:  "the build is broken!!!",
			expected: "The build is broken",
		},
		{
			name:     "exclamation before question mark survives",
			message:  "really! is it down?",
			expected: "Really! is it down",
		},
		{
			name:     "long message truncates at word boundary",
			message:  "the quick brown fox jumps over the lazy dog and keeps on running",
			expected: "The quick brown fox jumps over the lazy dog...",
		},
		{
			name:     "surrounding whitespace trimmed",
			message:  "   fix the flaky test   ",
			expected: "Fix the flaky test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.GenerateTitle(tt.message)
			if got != tt.expected {
				t.Errorf("GenerateTitle(%q) = %q, want %q", tt.message, got, tt.expected)
			}
		})
	}
}

func TestEngine_GenerateTitle_Fallback(t *testing.T) {
	engine := NewWithClock(fixedClock)

	shortInputs := []string{"", "   ", "ok", "hi!", "    yes   "}
	for _, input := range shortInputs {
		got := engine.GenerateTitle(input)
		if got != "Chat started on Jan 20, 2:30 PM" {
			t.Errorf("GenerateTitle(%q) = %q, want fallback title", input, got)
		}
	}
}

func TestEngine_GenerateTitle_Bounds(t *testing.T) {
	engine := NewWithClock(fixedClock)

	inputs := []string{
		"",
		"a",
		strings.Repeat("x", 500),
		strings.Repeat("word ", 100),
		"hi " + strings.Repeat("?", 80),
		"??????",
	}
	for _, input := range inputs {
		got := engine.GenerateTitle(input)
		if got == "" {
			t.Errorf("GenerateTitle(%q) returned empty title", input)
		}
		if n := len([]rune(got)); n > MaxTitleLength {
			t.Errorf("GenerateTitle(%q) returned %d runes, limit %d", input, n, MaxTitleLength)
		}
	}
}

func TestEngine_FallbackTitle_Format(t *testing.T) {
	engine := New()

	got := engine.FallbackTitle()
	const prefix = "Chat started on "
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("FallbackTitle() = %q, want %q prefix", got, prefix)
	}
	if _, err := time.Parse("Jan 2, 3:04 PM", got[len(prefix):]); err != nil {
		t.Errorf("FallbackTitle() suffix %q is not a short datetime: %v", got[len(prefix):], err)
	}
}

func TestTruncateAtBoundary(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		max      int
		expected string
	}{
		{
			name:     "short text unchanged",
			text:     "hello world",
			max:      50,
			expected: "hello world",
		},
		{
			name:     "exact length unchanged",
			text:     "abcdefghij",
			max:      10,
			expected: "abcdefghij",
		},
		{
			name:     "no boundary past threshold hard-cuts",
			text:     "The quick brown fox",
			max:      10,
			expected: "The qui...",
		},
		{
			name:     "single long word hard-cuts",
			text:     "Supercalifragilisticexpialidocious",
			max:      10,
			expected: "Superca...",
		},
		{
			name:     "boundary past threshold cuts at space",
			text:     "the quick brown fox jumps over the lazy dog and keeps on running",
			max:      50,
			expected: "the quick brown fox jumps over the lazy dog...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateAtBoundary(tt.text, tt.max)
			if got != tt.expected {
				t.Errorf("TruncateAtBoundary(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.expected)
			}
			if n := len([]rune(got)); n > tt.max {
				t.Errorf("TruncateAtBoundary(%q, %d) returned %d runes", tt.text, tt.max, n)
			}
		})
	}
}
