package host

import (
	"errors"
	"fmt"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine"
)

// ErrorKind classifies a failed request for the caller.
type ErrorKind string

// Error kinds reported in error responses.
const (
	KindOutOfBounds    ErrorKind = "OutOfBounds"
	KindLockFailure    ErrorKind = "LockFailure"
	KindInvalidChar    ErrorKind = "InvalidChar"
	KindBadRequest     ErrorKind = "BadRequest"
	KindUnknownCommand ErrorKind = "UnknownCommand"
	KindInternal       ErrorKind = "Internal"
)

// ErrSessionPoisoned is returned by Serve once the engine has reported a
// lock failure. The session cannot continue.
var ErrSessionPoisoned = errors.New("session ended: document lock poisoned")

// RequestError is a request-level failure with an explicit kind.
type RequestError struct {
	Kind    ErrorKind
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// badRequest returns a BadRequest error with a formatted message.
func badRequest(format string, args ...any) error {
	return &RequestError{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// KindOf maps an error to the kind reported to the caller.
func KindOf(err error) ErrorKind {
	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.Kind
	case errors.Is(err, engine.ErrLockPoisoned):
		return KindLockFailure
	case errors.Is(err, engine.ErrOutOfBounds):
		return KindOutOfBounds
	case errors.Is(err, engine.ErrInvalidChar):
		return KindInvalidChar
	default:
		return KindInternal
	}
}
