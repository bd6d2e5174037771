package strings

import (
	"testing"
	"unicode/utf8"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "long string truncated",
			input:    "hello world this is a long string",
			maxLen:   15,
			expected: "hello world ...",
		},
		{
			name:     "newlines collapsed",
			input:    "Example Domain\n\n\nThis domain is for use",
			maxLen:   40,
			expected: "Example Domain This domain is for use",
		},
		{
			name:     "leading and trailing whitespace removed",
			input:    "  \t hello \r\n",
			maxLen:   20,
			expected: "hello",
		},
		{
			name:     "multibyte runes are not split",
			input:    "ééééé",
			maxLen:   8,
			expected: "éé...",
		},
		{
			name:     "maxLen below minimum is clamped",
			input:    "hello world",
			maxLen:   1,
			expected: "h...",
		},
		{
			name:     "empty input",
			input:    "",
			maxLen:   10,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Preview(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("Preview(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
			if len(result) > tt.maxLen && tt.maxLen >= MinPreviewLen {
				t.Errorf("Preview(%q, %d) returned %d bytes", tt.input, tt.maxLen, len(result))
			}
			if !utf8.ValidString(result) {
				t.Errorf("Preview(%q, %d) returned invalid UTF-8", tt.input, tt.maxLen)
			}
		})
	}
}
