package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
		{"surrounding space", " warn ", log.WarnLevel},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			require.NotNil(t, logger)
			assert.Equal(t, testCase.expected, logger.GetLevel())
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	assert.True(t, logging.ValidLevel("debug"))
	assert.True(t, logging.ValidLevel("WARNING"))
	assert.False(t, logging.ValidLevel("verbose"))
	assert.False(t, logging.ValidLevel(""))
}

func TestNewWithOptionsWritesToOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Level: "debug", Output: &buf})

	logger.Debug("inserted", logging.FieldLine, 3)

	assert.Contains(t, buf.String(), "inserted")
	assert.Contains(t, buf.String(), "line=3")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	require.NotNil(t, logger)
	assert.Equal(t, log.ErrorLevel, logger.GetLevel())
}

func TestSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	defer logging.SetDefault(original)

	logging.SetDefault(logging.New("info"))

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestSetDefault(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	newLogger := logging.New("error")
	logging.SetDefault(newLogger)

	assert.Same(t, newLogger, logging.Default())
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("warn")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}
