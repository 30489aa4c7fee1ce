package utils

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title", "Thinking Fast and Slow", "Thinking Fast and Slow"},
		{"invalid characters", `What? A "Title": with/slashes`, "What A Title withslashes"},
		{"hashtags removed", "#Philosophy Notes", "Philosophy Notes"},
		{"brackets become parens", "Title [Draft]", "Title (Draft)"},
		{"whitespace collapsed", "Too   many\t\nspaces", "Too many spaces"},
		{"empty falls back", "", "Untitled"},
		{"only invalid chars falls back", `/\:*?`, "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeFilename_LongTitle(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := SanitizeFilename(long)
	if len(got) > 200 {
		t.Errorf("expected at most 200 characters, got %d", len(got))
	}
}
