package engine

import (
	"errors"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine/buffer"
)

// Errors returned by engine operations.
var (
	// ErrOutOfBounds indicates a computed offset or line index outside the
	// document. Match with errors.Is; errors.As with *OutOfBoundsError
	// recovers the attempted value and the bound.
	ErrOutOfBounds = buffer.ErrOutOfBounds

	// ErrInvalidChar indicates a rune that is not a Unicode scalar value.
	ErrInvalidChar = buffer.ErrInvalidChar

	// ErrLockPoisoned indicates a previous operation panicked while holding
	// the document. The engine refuses all further access; callers should
	// treat this as fatal for the session and not retry.
	ErrLockPoisoned = errors.New("document lock poisoned")
)

// OutOfBoundsError reports the attempted coordinate and the bound it broke.
type OutOfBoundsError = buffer.OutOfBoundsError
