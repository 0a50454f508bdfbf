package indexer

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChunkSize is the chunk size bound, in runes.
const DefaultMaxChunkSize = 500

// Split splits text into line-respecting chunks of at most maxChunkSize runes.
// Lines are accumulated greedily; when appending the next line would push the
// buffer past the limit and the buffer is non-empty, the buffer is emitted and
// a fresh one starts with that line. A single line longer than maxChunkSize is
// emitted whole as its own chunk, never truncated. The final buffer is emitted
// after trimming trailing whitespace.
//
// Split is deterministic and has no side effects: the same input always yields
// the same chunk sequence, and joining the chunks with newlines restores the
// input's lines in order.
func Split(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}

	var chunks []string
	current := ""

	for _, line := range strings.Split(text, "\n") {
		candidate := line
		if current != "" {
			candidate = current + "\n" + line
		}

		if utf8.RuneCountInString(candidate) > maxChunkSize && current != "" {
			chunks = append(chunks, current)
			current = line
			continue
		}
		current = candidate
	}

	if final := strings.TrimRight(current, " \t\r\n"); final != "" {
		chunks = append(chunks, final)
	}

	return chunks
}
