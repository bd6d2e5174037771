package strings

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultPreviewMaxLen is the default size of content previews in log lines.
	DefaultPreviewMaxLen = 60

	// MinPreviewLen is the smallest maxLen Preview accepts; it leaves room
	// for one character plus "...".
	MinPreviewLen = 4

	ellipsis = "..."
)

// Preview returns s as a single line of at most maxLen bytes.
//
// Whitespace runs, newlines included, collapse into single spaces. When the
// result is too long it is cut on a rune boundary and "..." is appended, so
// the output is always valid UTF-8 if the input was. maxLen values below
// MinPreviewLen are raised to MinPreviewLen.
func Preview(s string, maxLen int) string {
	if maxLen < MinPreviewLen {
		maxLen = MinPreviewLen
	}

	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}

	limit := maxLen - len(ellipsis)
	cut := 0
	for cut < len(s) {
		_, size := utf8.DecodeRuneInString(s[cut:])
		if cut+size > limit {
			break
		}
		cut += size
	}
	return s[:cut] + ellipsis
}
