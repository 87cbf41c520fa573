package rope

import (
	"strings"
	"unicode/utf8"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
// This enables cheap snapshots and thread-safe concurrent read access.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// buildFromChunks builds a balanced rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var nodes []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		nodes = append(nodes, newLeafNodeWithChunks(leafChunks))
	}

	for len(nodes) > 1 {
		nodes = groupNodes(nodes)
	}
	return Rope{root: nodes[0]}
}

// Len returns the total character count.
func (r Rope) Len() CharOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// ByteLen returns the total UTF-8 byte length.
func (r Rope) ByteLen() uint64 {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() uint32 {
	if r.root == nil {
		return 1
	}
	return r.root.LineCount()
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(int(r.ByteLen()))
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the character range [start, end).
func (r Rope) Slice(start, end CharOffset) string {
	if r.root == nil || start >= end {
		return ""
	}
	end = min(end, r.Len())

	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// CharAt returns the character at the given offset.
// Returns 0 and false if offset is out of range.
func (r Rope) CharAt(offset CharOffset) (rune, bool) {
	if r.root == nil || offset >= r.Len() {
		return 0, false
	}

	node := r.root
	for !node.IsLeaf() {
		idx, childOffset := node.findChildByChar(offset)
		node = node.children[idx]
		offset = childOffset
	}

	idx, chunkOffset := node.findChunkByChar(offset)
	return node.chunks[idx].runeAt(chunkOffset), true
}

// Insert inserts text at the given character offset.
// Offsets past the end append. Returns a new rope; original is unchanged.
func (r Rope) Insert(offset CharOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil {
		return FromString(text)
	}
	offset = min(offset, r.Len())

	nodes := r.root.insert(offset, text)
	for len(nodes) > 1 {
		nodes = groupNodes(nodes)
	}
	return Rope{root: nodes[0]}
}

// InsertRune inserts a single character at the given character offset.
func (r Rope) InsertRune(offset CharOffset, ch rune) Rope {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], ch)
	return r.Insert(offset, string(buf[:n]))
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// LineToChar returns the character offset of the first character of the
// given line. Lines are 0-indexed. Lines at or past LineCount() resolve to
// Len(), so LineToChar(LineCount()) is the end-of-document sentinel.
func (r Rope) LineToChar(line uint32) CharOffset {
	if r.root == nil || line == 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}

	// Line N starts right after the Nth newline.
	target := line
	offset := CharOffset(0)
	node := r.root

	for !node.IsLeaf() {
		idx := len(node.children) - 1
		for i, summary := range node.childSummaries {
			if target <= summary.Lines {
				idx = i
				break
			}
			target -= summary.Lines
			offset += summary.Chars
		}
		node = node.children[idx]
	}

	for _, chunk := range node.chunks {
		newlines := chunk.Newlines()
		if target <= newlines.Count() {
			return offset + CharOffset(newlines.Position(target-1)) + 1
		}
		target -= newlines.Count()
		offset += chunk.Chars()
	}

	return r.Len()
}

// CharToLine returns the line containing the given character offset.
// Offsets past the end resolve to the last line.
func (r Rope) CharToLine(offset CharOffset) uint32 {
	if r.root == nil || offset == 0 {
		return 0
	}
	if offset >= r.Len() {
		return r.LineCount() - 1
	}

	var line uint32
	node := r.root
	for !node.IsLeaf() {
		idx, childOffset := node.findChildByChar(offset)
		for i := 0; i < idx; i++ {
			line += node.childSummaries[i].Lines
		}
		node = node.children[idx]
		offset = childOffset
	}

	idx, chunkOffset := node.findChunkByChar(offset)
	for i := 0; i < idx; i++ {
		line += node.chunks[i].Newlines().Count()
	}
	return line + node.chunks[idx].Newlines().CountBefore(int(chunkOffset))
}

// LineEndChar returns the character offset of the end of the given line,
// not including its newline.
func (r Rope) LineEndChar(line uint32) CharOffset {
	if line+1 >= r.LineCount() {
		return r.Len()
	}
	return r.LineToChar(line+1) - 1
}

// LineText returns the text of the given line (not including newline).
// Lines past the end yield the empty string.
func (r Rope) LineText(line uint32) string {
	if line >= r.LineCount() {
		return ""
	}
	return r.Slice(r.LineToChar(line), r.LineEndChar(line))
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of chunks in the rope.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}

// Equals returns true if two ropes contain the same text.
// This compares content, not structure.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() || r.ByteLen() != other.ByteLen() {
		return false
	}
	return r.String() == other.String()
}
