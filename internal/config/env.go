package config

import (
	"fmt"
	"strconv"
)

// Environment variables read by the loader.
const (
	EnvSeed           = "HIDDERS_SEED"
	EnvLogLevel       = "HIDDERS_LOG_LEVEL"
	EnvWorkers        = "HIDDERS_WORKERS"
	EnvMaxMessageSize = "HIDDERS_MAX_MESSAGE_SIZE"
)

// applyEnv overlays environment variables on cfg. Empty values are treated
// as set, except for numeric settings where they are ignored.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok {
		cfg.Document.Seed = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Log.Level = v
	}

	ints := []struct {
		env    string
		target *int
	}{
		{EnvWorkers, &cfg.Host.Workers},
		{EnvMaxMessageSize, &cfg.Host.MaxMessageSize},
	}
	for _, s := range ints {
		v, ok := lookup(s.env)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", s.env, err)
		}
		*s.target = n
	}

	return nil
}
