package rope

// chunkIterFrame represents a position in the tree traversal for chunk iteration.
type chunkIterFrame struct {
	node     *Node
	childIdx int // Next child index to visit (for internal nodes)
	chunkIdx int // Next chunk index to visit (for leaf nodes)
}

// ChunkIterator iterates over chunks in a rope.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkIterFrame
	started    bool
	chunk      Chunk
	chunkStart CharOffset
	nextStart  CharOffset
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkIterFrame, 0, 16),
	}
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkIterFrame{node: it.rope.root})
		return it.findNextChunk()
	}

	if len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		if frame.node.IsLeaf() {
			frame.chunkIdx++
		}
	}
	return it.findNextChunk()
}

// findNextChunk finds the next available chunk.
func (it *ChunkIterator) findNextChunk() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if node.IsLeaf() {
			if frame.chunkIdx < len(node.chunks) {
				it.chunk = node.chunks[frame.chunkIdx]
				it.chunkStart = it.nextStart
				it.nextStart += it.chunk.Chars()
				return true
			}
			it.pop()
			continue
		}

		if frame.childIdx < len(node.children) {
			it.stack = append(it.stack, chunkIterFrame{node: node.children[frame.childIdx]})
			continue
		}
		it.pop()
	}

	return false
}

// pop leaves the current node and moves its parent to the next child.
func (it *ChunkIterator) pop() {
	it.stack = it.stack[:len(it.stack)-1]
	if len(it.stack) > 0 {
		it.stack[len(it.stack)-1].childIdx++
	}
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the character offset of the start of the current chunk.
func (it *ChunkIterator) Offset() CharOffset {
	return it.chunkStart
}

// LineIterator iterates over a contiguous run of lines in a rope.
type LineIterator struct {
	rope    Rope
	next    uint32
	end     uint32
	lineNum uint32
	text    string
}

// Lines returns an iterator over all lines in the rope.
func (r Rope) Lines() *LineIterator {
	return r.LinesRange(0, r.LineCount())
}

// LinesRange returns an iterator over lines [start, end), clamped to the
// rope's line count.
func (r Rope) LinesRange(start, end uint32) *LineIterator {
	end = min(end, r.LineCount())
	return &LineIterator{
		rope: r,
		next: start,
		end:  end,
	}
}

// Next advances to the next line.
// Returns true if there is a line, false if iteration is complete.
func (it *LineIterator) Next() bool {
	if it.next >= it.end {
		return false
	}
	it.lineNum = it.next
	it.text = it.rope.LineText(it.lineNum)
	it.next++
	return true
}

// Text returns the text of the current line (without newline).
func (it *LineIterator) Text() string {
	return it.text
}

// Line returns the current line number (0-indexed).
func (it *LineIterator) Line() uint32 {
	return it.lineNum
}
