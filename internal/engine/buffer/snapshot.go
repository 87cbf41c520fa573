package buffer

import "github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine/rope"

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	view
	revisionID RevisionID
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// Chunks returns an iterator over all chunks in the snapshot's rope.
func (s *Snapshot) Chunks() *rope.ChunkIterator {
	return s.rope.Chunks()
}
