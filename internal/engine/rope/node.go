package rope

import "strings"

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
// All leaves sit at the same depth.
type Node struct {
	height  uint8       // 0 for leaves, >0 for internal
	summary TextSummary // Aggregated metrics for entire subtree

	// Internal node fields (height > 0)
	children       []*Node
	childSummaries []TextSummary

	// Leaf node fields (height == 0)
	chunks []Chunk
}

// newLeafNode creates an empty leaf node.
func newLeafNode() *Node {
	return &Node{summary: TextSummary{Flags: FlagASCII}}
}

// newLeafNodeWithChunks creates a leaf node with the given chunks.
func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	n.summary = TextSummary{Flags: FlagASCII}
	for _, chunk := range chunks {
		n.summary = n.summary.Add(chunk.Summary())
	}
	return n
}

// newInternalNode creates an internal node with the given children.
// All children must share the same height.
func newInternalNode(children []*Node) *Node {
	summaries := make([]TextSummary, len(children))
	total := TextSummary{Flags: FlagASCII}

	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         children[0].height + 1,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the character length of text in this subtree.
func (n *Node) Len() CharOffset {
	return n.summary.Chars
}

// LineCount returns the number of lines in this subtree.
func (n *Node) LineCount() uint32 {
	return n.summary.Lines + 1
}

// appendTo appends all text in this subtree to the builder.
func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}

	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends text in the character range [start, end) to the builder.
func (n *Node) appendRange(sb *strings.Builder, start, end CharOffset) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := CharOffset(0)
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Chars()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}

			sliceStart := 0
			if start > offset {
				sliceStart = chunk.byteIndex(start - offset)
			}
			sliceEnd := chunk.Len()
			if end < chunkEnd {
				sliceEnd = chunk.byteIndex(end - offset)
			}

			sb.WriteString(chunk.String()[sliceStart:sliceEnd])
			offset = chunkEnd
		}
		return
	}

	offset := CharOffset(0)
	for i, child := range n.children {
		childLen := n.childSummaries[i].Chars
		childEnd := offset + childLen

		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}

		childStart := CharOffset(0)
		if start > offset {
			childStart = start - offset
		}
		childEndAdj := childLen
		if end < childEnd {
			childEndAdj = end - offset
		}

		child.appendRange(sb, childStart, childEndAdj)
		offset = childEnd
	}
}

// insert inserts text at a character offset relative to this node and
// returns the node(s) that replace it. Untouched subtrees are shared with
// the original, so the operation copies only the root-to-leaf path.
// More than one node is returned when the node overflowed and split.
func (n *Node) insert(offset CharOffset, text string) []*Node {
	if n.IsLeaf() {
		return n.insertLeaf(offset, text)
	}

	idx, childOffset := n.findChildByChar(offset)
	replaced := n.children[idx].insert(childOffset, text)

	children := make([]*Node, 0, len(n.children)+len(replaced)-1)
	children = append(children, n.children[:idx]...)
	children = append(children, replaced...)
	children = append(children, n.children[idx+1:]...)

	return groupNodes(children)
}

// insertLeaf inserts text into a leaf's chunks.
func (n *Node) insertLeaf(offset CharOffset, text string) []*Node {
	var chunks []Chunk

	if len(n.chunks) == 0 {
		chunks = splitIntoChunks(text)
	} else {
		idx, chunkOffset := n.findChunkByChar(offset)
		inserted := n.chunks[idx].Insert(chunkOffset, text)

		chunks = make([]Chunk, 0, len(n.chunks)+len(inserted)-1)
		chunks = append(chunks, n.chunks[:idx]...)
		chunks = append(chunks, inserted...)
		chunks = append(chunks, n.chunks[idx+1:]...)
	}

	if len(chunks) <= MaxChunksPerLeaf {
		return []*Node{newLeafNodeWithChunks(chunks)}
	}

	// Split into evenly filled leaves.
	count := (len(chunks) + MaxChunksPerLeaf - 1) / MaxChunksPerLeaf
	per := (len(chunks) + count - 1) / count
	leaves := make([]*Node, 0, count)
	for i := 0; i < len(chunks); i += per {
		end := min(i+per, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}
	return leaves
}

// groupNodes packs same-height siblings into as few internal nodes as the
// fan-out allows, spreading them evenly.
func groupNodes(children []*Node) []*Node {
	if len(children) <= MaxChildren {
		return []*Node{newInternalNode(children)}
	}

	count := (len(children) + MaxChildren - 1) / MaxChildren
	per := (len(children) + count - 1) / count
	parents := make([]*Node, 0, count)
	for i := 0; i < len(children); i += per {
		end := min(i+per, len(children))
		group := make([]*Node, end-i)
		copy(group, children[i:end])
		parents = append(parents, newInternalNode(group))
	}
	return parents
}

// findChildByChar finds the child containing the given character offset.
// An offset equal to the node length resolves to the last child so that
// appends land at the end of the document.
func (n *Node) findChildByChar(offset CharOffset) (int, CharOffset) {
	current := CharOffset(0)
	for i, summary := range n.childSummaries {
		if current+summary.Chars > offset {
			return i, offset - current
		}
		current += summary.Chars
	}

	last := len(n.children) - 1
	return last, offset - (n.summary.Chars - n.childSummaries[last].Chars)
}

// findChunkByChar finds the chunk of a leaf containing the character offset,
// with the same end-of-node rule as findChildByChar.
func (n *Node) findChunkByChar(offset CharOffset) (int, CharOffset) {
	current := CharOffset(0)
	for i, chunk := range n.chunks {
		if current+chunk.Chars() > offset {
			return i, offset - current
		}
		current += chunk.Chars()
	}

	last := len(n.chunks) - 1
	return last, offset - (n.summary.Chars - n.chunks[last].Chars())
}
