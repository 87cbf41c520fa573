package buffer

import "sync/atomic"

// CharOffset is an absolute, 0-based index into the document's character
// sequence. Characters are Unicode scalar values, not bytes.
type CharOffset = int64

// LineIndex is a 0-based index identifying a single line.
type LineIndex = uint32

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter atomic.Uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(revisionCounter.Add(1))
}
