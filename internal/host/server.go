package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine"
	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/logging"
)

// DefaultWorkers bounds concurrent requests when no limit is configured.
const DefaultWorkers = 4

// Server reads framed requests, runs them concurrently against the engine
// and writes one framed response per request. Responses are written in
// completion order; callers match them by id.
type Server struct {
	registry  *Registry
	sessionID string
	workers   int
	maxSize   int
	logger    *log.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithWorkers bounds how many requests are handled at once.
func WithWorkers(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMaxMessageSize bounds the size of a request body in bytes.
func WithMaxMessageSize(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *log.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry replaces the command registry. The engine commands are not
// added to a replaced registry.
func WithRegistry(r *Registry) ServerOption {
	return func(s *Server) {
		s.registry = r
	}
}

// NewServer creates a server for eng with the document commands
// registered.
func NewServer(eng *engine.Engine, opts ...ServerOption) *Server {
	s := &Server{
		sessionID: uuid.New().String(),
		workers:   DefaultWorkers,
		maxSize:   DefaultMaxContentLength,
		logger:    logging.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = NewRegistry()
		RegisterEngine(s.registry, eng)
	}
	s.logger = s.logger.With(logging.FieldSession, s.sessionID)

	return s
}

// SessionID returns the unique ID of this server's session.
func (s *Server) SessionID() string {
	return s.sessionID
}

// Registry returns the command registry, for adding commands.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Serve handles requests from r until r is exhausted, ctx is cancelled,
// a response cannot be written, or the engine reports a lock failure.
// A clean end of input returns nil once in-flight requests finish.
// Cancellation is observed between requests; a blocked read is not
// interrupted.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := NewFrameReader(r, s.maxSize)
	writer := NewFrameWriter(w)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	s.logger.Info("session started", logging.FieldWorkers, s.workers)

	readErr := s.readLoop(gctx, g, reader, writer)
	waitErr := g.Wait()

	switch {
	case waitErr != nil:
		s.logger.Error("session ended", logging.FieldError, waitErr)
		return waitErr
	case readErr != nil:
		s.logger.Error("session ended", logging.FieldError, readErr)
		return readErr
	}

	s.logger.Info("session ended")
	return nil
}

func (s *Server) readLoop(ctx context.Context, g *errgroup.Group, reader *FrameReader, writer *FrameWriter) error {
	for {
		// A failed worker cancels ctx; Serve reports the worker's error.
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			var tooLarge *FrameTooLargeError
			if errors.As(err, &tooLarge) {
				s.logger.Warn("request rejected", logging.FieldError, err)
				resp := s.encodeError(s.logger, "null", &RequestError{Kind: KindBadRequest, Message: err.Error()})
				if err := writer.Write(&Message{Content: resp}); err != nil {
					return fmt.Errorf("write response: %w", err)
				}
				continue
			}
			return fmt.Errorf("read request: %w", err)
		}

		g.Go(func() error {
			resp, fatal := s.dispatch(ctx, msg.Content)
			if err := writer.Write(&Message{Content: resp}); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			return fatal
		})
	}
}

// Dispatch handles one request body and returns the response body.
func (s *Server) Dispatch(ctx context.Context, data []byte) []byte {
	resp, _ := s.dispatch(ctx, data)
	return resp
}

// dispatch returns the response and, when the session cannot continue,
// ErrSessionPoisoned.
func (s *Server) dispatch(ctx context.Context, data []byte) (resp []byte, fatal error) {
	start := time.Now()

	req, err := ParseRequest(data)
	if err != nil {
		s.logger.Warn("request rejected", logging.FieldError, err)
		return s.encodeError(s.logger, req.ID, err), nil
	}

	logger := s.logger.With(logging.FieldRequestID, req.ID, logging.FieldCommand, req.Command)

	handler, ok := s.registry.Lookup(req.Command)
	if !ok {
		err := &RequestError{Kind: KindUnknownCommand, Message: fmt.Sprintf("unknown command %q", req.Command)}
		logger.Warn("request rejected", logging.FieldError, err)
		return s.encodeError(logger, req.ID, err), nil
	}

	result, err := s.call(logging.WithLogger(ctx, logger), handler, req.Args)
	if err == nil {
		resp, err = EncodeResult(req.ID, result)
	}
	if err != nil {
		kind := KindOf(err)
		logger.Warn("request failed", logging.FieldKind, kind, logging.FieldError, err)
		if kind == KindLockFailure {
			fatal = ErrSessionPoisoned
		}
		return s.encodeError(logger, req.ID, err), fatal
	}

	logger.Debug("request handled", logging.FieldDuration, time.Since(start))
	return resp, nil
}

// fallbackError is sent when an error response itself cannot be encoded.
var fallbackError = []byte(`{"id":null,"error":{"kind":"Internal","message":"failed to encode error response"}}`)

// encodeError builds the error response for id, logging and falling back
// to a fixed Internal response if encoding fails.
func (s *Server) encodeError(logger *log.Logger, id string, err error) []byte {
	resp, encErr := EncodeError(id, err)
	if encErr != nil {
		logger.Error("encode error response", logging.FieldError, encErr, "cause", err)
		return fallbackError
	}
	return resp
}

// call runs h, turning a panic into an Internal error. The engine has
// already poisoned itself by then, so later requests fail with
// LockFailure.
func (s *Server) call(ctx context.Context, h HandlerFunc, args gjson.Result) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error("handler panicked", "panic", r)
			err = &RequestError{Kind: KindInternal, Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()
	return h(ctx, args)
}
