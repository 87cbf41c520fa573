package buffer

import (
	"fmt"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine/rope"
)

// view implements the bounds-checked read operations shared by Buffer and
// Snapshot.
type view struct {
	rope rope.Rope
}

// Len returns the total number of characters.
func (v view) Len() CharOffset {
	return CharOffset(v.rope.Len())
}

// LineCount returns the number of lines. An empty document has one line.
func (v view) LineCount() LineIndex {
	return v.rope.LineCount()
}

// IsEmpty returns true if the document contains no characters.
func (v view) IsEmpty() bool {
	return v.rope.IsEmpty()
}

// Text returns the full document content as a string.
func (v view) Text() string {
	return v.rope.String()
}

// LineToChar returns the character offset of the first character of line.
// LineToChar(LineCount()) is the end-of-document sentinel and returns Len().
func (v view) LineToChar(line LineIndex) (CharOffset, error) {
	if count := v.rope.LineCount(); line > count {
		return 0, lineOutOfBounds(line, count)
	}
	return CharOffset(v.rope.LineToChar(line)), nil
}

// LineText returns the text of line with its trailing newline stripped.
func (v view) LineText(line LineIndex) (string, error) {
	if count := v.rope.LineCount(); line >= count {
		return "", lineOutOfBounds(line, count-1)
	}
	return v.rope.LineText(line), nil
}

// CharToLine returns the line containing offset. Len() belongs to the last
// line.
func (v view) CharToLine(offset CharOffset) (LineIndex, error) {
	if offset < 0 || offset > v.Len() {
		return 0, offsetOutOfBounds(offset, v.Len())
	}
	return v.rope.CharToLine(rope.CharOffset(offset)), nil
}

// CharAt returns the character at offset.
func (v view) CharAt(offset CharOffset) (rune, error) {
	if offset < 0 || offset >= v.Len() {
		return 0, offsetOutOfBounds(offset, v.Len()-1)
	}
	ch, _ := v.rope.CharAt(rope.CharOffset(offset))
	return ch, nil
}

// Slice returns the text in the character range [start, end).
func (v view) Slice(start, end CharOffset) (string, error) {
	return v.TextInRange(NewRange(start, end))
}

// TextInRange returns the text covered by r.
func (v view) TextInRange(r Range) (string, error) {
	if !r.IsValid() || r.End > v.Len() {
		return "", fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	return v.rope.Slice(rope.CharOffset(r.Start), rope.CharOffset(r.End)), nil
}

// LineRange returns the character range of line, excluding its newline.
func (v view) LineRange(line LineIndex) (Range, error) {
	if count := v.rope.LineCount(); line >= count {
		return Range{}, lineOutOfBounds(line, count-1)
	}
	return NewRange(
		CharOffset(v.rope.LineToChar(line)),
		CharOffset(v.rope.LineEndChar(line)),
	), nil
}

// Lines returns an iterator over lines [start, end), clamped to the
// document.
func (v view) Lines(start, end LineIndex) *rope.LineIterator {
	return v.rope.LinesRange(start, end)
}
