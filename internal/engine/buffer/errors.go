package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds indicates a character offset or line index beyond the
	// document's current bounds.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrInvalidChar indicates text that is not a sequence of Unicode
	// scalar values.
	ErrInvalidChar = errors.New("invalid character")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")
)

// BoundKind names the coordinate that fell outside the document.
type BoundKind uint8

const (
	// BoundOffset marks a character offset.
	BoundOffset BoundKind = iota
	// BoundLine marks a line index.
	BoundLine
)

// String returns the coordinate name.
func (k BoundKind) String() string {
	if k == BoundLine {
		return "line"
	}
	return "offset"
}

// OutOfBoundsError reports the attempted coordinate and the bound it broke,
// so the caller can retry with corrected coordinates.
type OutOfBoundsError struct {
	Kind  BoundKind
	Value int64 // attempted offset or line
	Max   int64 // largest valid value at the time of the call
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s %d out of bounds (max %d)", e.Kind, e.Value, e.Max)
}

// Unwrap lets errors.Is match ErrOutOfBounds.
func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

func offsetOutOfBounds(offset, max CharOffset) error {
	return &OutOfBoundsError{Kind: BoundOffset, Value: offset, Max: max}
}

func lineOutOfBounds(line, max LineIndex) error {
	return &OutOfBoundsError{Kind: BoundLine, Value: int64(line), Max: int64(max)}
}
