package buffer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine/rope"
)

// Buffer is the mutable document: a sequence of Unicode scalar values split
// into lines by '\n'. It is backed by a rope, so line/offset translation and
// insertion are O(log n) in document size.
//
// A Buffer is not safe for concurrent use. It is meant to have exactly one
// owner that serializes access; use Snapshot to hand a consistent read-only
// view to other goroutines.
type Buffer struct {
	view
	revisionID RevisionID
	normalize  bool
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		view:       view{rope: rope.New()},
		revisionID: NewRevisionID(),
		normalize:  true,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content. s must be
// valid UTF-8; text from outside the program should go through
// NewBufferFromReader, which checks it.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.rope = rope.FromString(b.prepare(s))
	return b
}

// NewBufferFromReader creates a buffer from the text read from r. It fails
// with ErrInvalidChar if the text is not valid UTF-8.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)

	builder := rope.NewBuilder(b.normalize)
	if _, err := builder.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading buffer content: %w", err)
	}

	content, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidChar, err)
	}

	b.rope = content
	return b, nil
}

// prepare applies newline normalization when enabled.
func (b *Buffer) prepare(s string) string {
	if b.normalize {
		return normalizeNewlines(s)
	}
	return s
}

// Insert inserts ch immediately before the character currently at offset.
// Inserting '\n' splits the line containing offset in two. Offset Len() is
// valid and appends.
//
// Fails with an *OutOfBoundsError (matching ErrOutOfBounds) when offset is
// negative or greater than Len(), and with ErrInvalidChar when ch is not a
// Unicode scalar value. The buffer is unchanged on failure.
func (b *Buffer) Insert(offset CharOffset, ch rune) error {
	if offset < 0 || offset > b.Len() {
		return offsetOutOfBounds(offset, b.Len())
	}
	if !utf8.ValidRune(ch) {
		return fmt.Errorf("%w: %U", ErrInvalidChar, ch)
	}

	b.rope = b.rope.InsertRune(rope.CharOffset(offset), ch)
	b.revisionID = NewRevisionID()
	return nil
}

// InsertText inserts text before the character currently at offset.
// It follows the same rules as Insert; text must be valid UTF-8.
func (b *Buffer) InsertText(offset CharOffset, text string) error {
	if offset < 0 || offset > b.Len() {
		return offsetOutOfBounds(offset, b.Len())
	}
	if !utf8.ValidString(text) {
		return ErrInvalidChar
	}
	if text == "" {
		return nil
	}

	b.rope = b.rope.Insert(rope.CharOffset(offset), b.prepare(text))
	b.revisionID = NewRevisionID()
	return nil
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	return b.revisionID
}

// Snapshot returns a read-only view of the current buffer state. The
// snapshot shares structure with the buffer and stays valid, unchanged,
// after later edits.
func (b *Buffer) Snapshot() *Snapshot {
	return &Snapshot{
		view:       b.view,
		revisionID: b.revisionID,
	}
}
