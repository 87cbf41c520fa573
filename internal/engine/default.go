package engine

import "sync"

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the process-wide engine, creating it with the default
// seed on first use. Code that can be handed an *Engine should prefer New
// and pass the engine explicitly.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}
