// Package chunk splits search text into pieces the archive will accept.
// Cuts are purely positional: no separators are added or removed, so
// joining the chunks in order gives back the original text.
package chunk

import (
	"fmt"
	"unicode/utf8"

	"github.com/gaurav-prasanna/babelpipe/core"
)

const (
	// ArchiveLimit is the longest search text the archive accepts.
	ArchiveLimit = 3200
	// MaxChunkSize leaves some margin below ArchiveLimit.
	MaxChunkSize = 3000
)

// Chunker splits text into fixed-size character chunks.
type Chunker struct {
	Size int // characters (runes) per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to MaxChunkSize if size <= 0 or size > MaxChunkSize.
func New(size int) *Chunker {
	if size <= 0 || size > MaxChunkSize {
		size = MaxChunkSize
	}
	return &Chunker{Size: size}
}

// Split returns the chunks to submit for text, in order.
//
// With autoSplit the text is always cut every Size characters and the
// result is never empty: "" yields a single empty chunk. Without autoSplit
// the text is a single chunk and must fit in MaxChunkSize characters,
// whatever Size is.
func (c *Chunker) Split(text string, autoSplit bool) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: search text is not valid UTF-8", core.ErrInvalidArgument)
	}

	n := utf8.RuneCountInString(text)
	if !autoSplit {
		if n > MaxChunkSize {
			return nil, &core.OversizeQueryError{Length: n, Limit: MaxChunkSize}
		}
		return []string{text}, nil
	}

	if n == 0 {
		return []string{""}, nil
	}

	chunks := make([]string, 0, (n+c.Size-1)/c.Size)
	start, count := 0, 0
	for i := range text {
		if count == c.Size {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	chunks = append(chunks, text[start:])
	return chunks, nil
}
