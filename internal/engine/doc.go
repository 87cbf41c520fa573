// Package engine guards the editor's single shared document.
//
// The Engine is the only way in. Callers address the document by
// (line, column) pairs; the engine translates them to absolute character
// offsets, performs the operation under an exclusive lock, and hands back
// plain values that are safe to serialize.
//
// # Architecture
//
//   - rope: persistent B+ tree rope with per-node character and newline counts
//   - buffer: single-owner mutable document over the rope
//   - engine: mutex-guarded gateway, viewport projection, lock poisoning
//
// # Basic Usage
//
//	e := engine.New(engine.WithSeed("AA\nBB"))
//
//	_ = e.InsertChar('X', 0, 2) // "AAX\nBB"
//	_ = e.InsertChar('\n', 0, 1) // "A\nAX\nBB"
//
//	vp, _ := e.Viewport(0, 5)
//	// vp.Lines == ["A", "AX", "BB"], vp.TotalLines == 3
//
// # Thread Safety
//
// All Engine methods may be called from any goroutine. Each holds one
// sync.Mutex for its full duration, with no reader/writer distinction, so
// operations are atomic but not ordered by arrival.
//
// # Errors
//
// InsertChar reports coordinates outside the document with an error
// matching ErrOutOfBounds (see OutOfBoundsError for details). Viewport
// never fails on coordinates. After a panic inside a guarded operation,
// every call returns an error matching ErrLockPoisoned.
package engine
