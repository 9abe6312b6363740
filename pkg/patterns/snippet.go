package patterns

import "strings"

// maxSnippetLen bounds the context window captured around a match.
const maxSnippetLen = 110

// Snippet returns a bounded window of text surrounding [start, end). The
// result is an owned copy so callers may discard the source text after the
// call; it always contains the matched span when the indices are valid, and
// falls back to a copy of the match (or the whole text) otherwise.
func Snippet(text string, start, end int) string {
	if start < 0 || end > len(text) || start >= end {
		if len(text) > maxSnippetLen {
			text = text[:maxSnippetLen]
		}
		return strings.Clone(text)
	}

	matchLen := end - start
	pad := (maxSnippetLen - matchLen) / 2
	if pad < 0 {
		pad = 0
	}

	lo := start - pad
	if lo < 0 {
		lo = 0
	}
	hi := end + pad
	if hi > len(text) {
		hi = len(text)
	}
	if hi-lo > maxSnippetLen {
		hi = lo + maxSnippetLen
		if hi < end {
			// Keep the match itself intact even when it fills the window.
			hi = end
		}
	}
	return strings.Clone(text[lo:hi])
}
