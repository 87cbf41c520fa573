package host

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine"
)

// Command names understood by the bridge.
const (
	CommandInsertChar  = "insert_char"
	CommandGetViewport = "get_viewport"
)

// HandlerFunc handles one command. The returned value is JSON-encoded as
// the response result; nil encodes as null.
type HandlerFunc func(ctx context.Context, args gjson.Result) (any, error)

// Registry maps command names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register adds or replaces the handler for command.
func (r *Registry) Register(command string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[command] = h
}

// Lookup returns the handler for command.
func (r *Registry) Lookup(command string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[command]
	return h, ok
}

// Commands returns the registered command names, sorted.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterEngine registers the document commands backed by eng.
func RegisterEngine(r *Registry, eng *engine.Engine) {
	r.Register(CommandInsertChar, insertCharHandler(eng))
	r.Register(CommandGetViewport, getViewportHandler(eng))
}

// insertCharHandler handles {"char": "x", "lineIdx": 0, "colIdx": 2}.
func insertCharHandler(eng *engine.Engine) HandlerFunc {
	return func(_ context.Context, args gjson.Result) (any, error) {
		ch, err := charArg(args, "char")
		if err != nil {
			return nil, err
		}
		line, err := uintArg(args, "lineIdx", math.MaxUint32)
		if err != nil {
			return nil, err
		}
		col, err := uintArg(args, "colIdx", math.MaxInt64)
		if err != nil {
			return nil, err
		}

		if err := eng.InsertChar(ch, engine.LineIndex(line), engine.ColumnOffset(col)); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

// getViewportHandler handles {"startLine": 0, "height": 40}.
func getViewportHandler(eng *engine.Engine) HandlerFunc {
	return func(_ context.Context, args gjson.Result) (any, error) {
		start, err := uintArg(args, "startLine", math.MaxUint32)
		if err != nil {
			return nil, err
		}
		height, err := uintArg(args, "height", math.MaxUint32)
		if err != nil {
			return nil, err
		}

		vp, err := eng.Viewport(engine.LineIndex(start), uint32(height))
		if err != nil {
			return nil, err
		}
		return vp, nil
	}
}
