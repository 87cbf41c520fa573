package rope

// NewlineIndex records the character positions of newlines within a chunk.
// Chunks with few newlines keep their positions inline and never allocate.
//
// Positions fit in uint16 because a chunk never exceeds MaxChunkSize bytes,
// and therefore never exceeds MaxChunkSize characters.
type NewlineIndex struct {
	inline [MaxInlineNewlines]uint16
	count  uint16

	// positions is only allocated when count > MaxInlineNewlines.
	positions []uint16
}

// MaxInlineNewlines is the number of newline positions stored inline.
const MaxInlineNewlines = 4

// ComputeNewlineIndex scans a string and builds a newline index keyed by
// character position.
func ComputeNewlineIndex(s string) NewlineIndex {
	var idx NewlineIndex

	count := CountLines(s)
	if count == 0 {
		return idx
	}
	idx.count = uint16(count)
	if count > MaxInlineNewlines {
		idx.positions = make([]uint16, 0, count)
	}

	var char uint16
	recorded := 0
	for _, r := range s {
		if r == '\n' {
			if recorded < MaxInlineNewlines {
				idx.inline[recorded] = char
			}
			if count > MaxInlineNewlines {
				idx.positions = append(idx.positions, char)
			}
			recorded++
		}
		char++
	}

	return idx
}

// Count returns the number of newlines.
func (idx *NewlineIndex) Count() uint32 {
	return uint32(idx.count)
}

// Position returns the character position of the nth newline (0-indexed).
// Returns -1 if n is out of range.
func (idx *NewlineIndex) Position(n uint32) int {
	if n >= uint32(idx.count) {
		return -1
	}
	if idx.positions != nil {
		return int(idx.positions[n])
	}
	return int(idx.inline[n])
}

// CountBefore returns how many newlines sit strictly before character
// position pos.
func (idx *NewlineIndex) CountBefore(pos int) uint32 {
	var n uint32
	for n < uint32(idx.count) && idx.Position(n) < pos {
		n++
	}
	return n
}
