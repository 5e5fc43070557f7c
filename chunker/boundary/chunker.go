package boundary

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/w-h-a/medrag/chunker"
)

type breakKind int

const (
	paragraphBreak breakKind = iota
	lineBreak
	sentenceBreak
	spaceBreak
)

// boundaryChunker walks the text in windows of ChunkSize runes. Each window
// ends on the best break it can find and the next one starts exactly
// ChunkOverlap runes before that end.
type boundaryChunker struct {
	options chunker.Options
}

func (c *boundaryChunker) Split(text string) []string {
	runes := []rune(text)
	n := len(runes)
	size := c.options.ChunkSize
	overlap := c.options.ChunkOverlap

	var chunks []string

	start := 0
	for start < n {
		end := start + size
		if end >= n {
			end = n
		} else {
			end = c.cut(runes, start, end)
		}

		chunk := string(runes[start:end])
		if len(strings.TrimSpace(chunk)) > 0 {
			chunks = append(chunks, chunk)
		}

		if end == n {
			break
		}

		start = end - overlap
	}

	return chunks
}

// cut picks the end of the window starting at start. The result is always
// greater than start+overlap so the walk makes progress.
func (c *boundaryChunker) cut(runes []rune, start int, limit int) int {
	lo := start + c.options.ChunkOverlap + 1
	preferred := max(lo, start+c.options.ChunkSize/2)

	for _, kind := range []breakKind{paragraphBreak, lineBreak, sentenceBreak} {
		if end, ok := lastBreak(runes, kind, preferred, limit); ok {
			return end
		}
	}

	if end, ok := lastBreak(runes, spaceBreak, lo, limit); ok {
		return end
	}

	return limit
}

func lastBreak(runes []rune, kind breakKind, lo int, hi int) (int, bool) {
	for end := hi; end >= lo; end-- {
		if isBreak(runes, kind, end) {
			return end, true
		}
	}
	return 0, false
}

// isBreak reports whether a chunk ending just before index end stops on a
// break of the given kind.
func isBreak(runes []rune, kind breakKind, end int) bool {
	if end < 1 {
		return false
	}
	last := runes[end-1]

	switch kind {
	case paragraphBreak:
		return end >= 2 && last == '\n' && runes[end-2] == '\n'
	case lineBreak:
		return last == '\n'
	case sentenceBreak:
		return end >= 2 && unicode.IsSpace(last) && strings.ContainsRune(".!?", runes[end-2])
	case spaceBreak:
		return unicode.IsSpace(last)
	}

	return false
}

func NewChunker(opts ...chunker.Option) (chunker.Chunker, error) {
	options := chunker.NewOptions(opts...)

	if options.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", options.ChunkSize)
	}

	if options.ChunkOverlap < 0 || options.ChunkOverlap >= options.ChunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", options.ChunkSize, options.ChunkOverlap)
	}

	return &boundaryChunker{options: options}, nil
}
