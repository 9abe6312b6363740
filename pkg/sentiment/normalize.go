package sentiment

import (
	"strings"
	"unicode"
)

// defaultMaxTextLength bounds classifier input to keep latency predictable.
const defaultMaxTextLength = 512

// Normalize prepares text for the classifier: whitespace runs collapse to
// single spaces, characters outside a basic word/punctuation allowlist are
// stripped, and the result is truncated to maxLen runes (0 selects the
// default).
func Normalize(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = defaultMaxTextLength
	}

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true // trims leading whitespace
	count := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
				count++
			}
			continue
		}
		if !allowedRune(r) {
			continue
		}
		b.WriteRune(r)
		lastSpace = false
		count++
		if count >= maxLen {
			break
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func allowedRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '.', ',', '!', '?', '\'', '"', '-', ':', ';', '(', ')':
		return true
	}
	return false
}
