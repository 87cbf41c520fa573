package rope

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk produced when building.
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk represents a bounded string stored in leaf nodes.
// Chunks are immutable once created.
type Chunk struct {
	data     string
	summary  TextSummary
	newlines NewlineIndex
}

// NewChunk creates a chunk from a string.
// Computes summary metrics eagerly.
func NewChunk(s string) Chunk {
	return Chunk{
		data:     s,
		summary:  ComputeSummary(s),
		newlines: ComputeNewlineIndex(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Newlines returns the chunk's newline index.
func (c Chunk) Newlines() *NewlineIndex {
	return &c.newlines
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// Chars returns the number of characters in the chunk.
func (c Chunk) Chars() CharOffset {
	return c.summary.Chars
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// byteIndex converts a character position within the chunk to a byte index.
// Positions past the end map to the chunk's byte length.
func (c Chunk) byteIndex(char CharOffset) int {
	if c.summary.Flags&FlagASCII != 0 {
		if char > CharOffset(len(c.data)) {
			return len(c.data)
		}
		return int(char)
	}

	var i CharOffset
	for b := range c.data {
		if i == char {
			return b
		}
		i++
	}
	return len(c.data)
}

// runeAt returns the character at the given position within the chunk.
func (c Chunk) runeAt(char CharOffset) rune {
	if c.summary.Flags&FlagASCII != 0 {
		return rune(c.data[char])
	}

	var i CharOffset
	for _, r := range c.data {
		if i == char {
			return r
		}
		i++
	}
	return 0
}

// Split splits a chunk at a character offset, returning two chunks.
func (c Chunk) Split(char CharOffset) (Chunk, Chunk) {
	if char == 0 {
		return Chunk{}, c
	}
	if char >= c.summary.Chars {
		return c, Chunk{}
	}

	b := c.byteIndex(char)
	return NewChunk(c.data[:b]), NewChunk(c.data[b:])
}

// Insert returns the chunks produced by inserting text at a character
// position. The result is a single chunk unless it outgrows MaxChunkSize.
func (c Chunk) Insert(char CharOffset, text string) []Chunk {
	b := c.byteIndex(char)
	return splitIntoChunks(c.data[:b] + text + c.data[b:])
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	var chunks []Chunk
	remaining := s

	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(remaining))
			break
		}

		splitPoint := findUTF8Boundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:splitPoint]))
		remaining = remaining[splitPoint:]
	}

	return chunks
}

// findUTF8Boundary finds a valid UTF-8 boundary near the target position.
// It prefers splitting after a newline if one exists nearby.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	searchStart := max(target-MinChunkSize/4, 0)
	searchEnd := min(target+MinChunkSize/4, len(s))

	for i := target; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= searchStart; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	// No newline nearby; back up to the start of the rune at target.
	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !isUTF8Start(s[pos]) {
			pos++
		}
	}

	return pos
}

// isUTF8Start returns true if the byte is the start of a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
