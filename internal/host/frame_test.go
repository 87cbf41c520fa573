package host

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewFrameWriter(&buf)

	require.NoError(t, w.Write(&Message{Content: []byte(`{"test": "value"}`)}))
	assert.Equal(t, "Content-Length: 17\r\n\r\n{\"test\": \"value\"}", buf.String())
}

func TestFrameWriterWithContentType(t *testing.T) {
	var buf bytes.Buffer
	w := NewFrameWriter(&buf)

	require.NoError(t, w.Write(&Message{ContentType: "application/json", Content: []byte(`{}`)}))
	assert.Contains(t, buf.String(), "Content-Type: application/json\r\n")
}

func TestFrameReader(t *testing.T) {
	input := "Content-Length: 17\r\n\r\n{\"test\": \"value\"}" +
		"content-length:2\r\nContent-Type: application/json\r\n\r\n{}"
	r := NewFrameReader(strings.NewReader(input), 0)

	msg, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, `{"test": "value"}`, string(msg.Content))

	msg, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(msg.Content))
	assert.Equal(t, "application/json", msg.ContentType)

	_, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFrameReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing length", "Content-Type: x\r\n\r\n{}"},
		{"invalid header", "garbage\r\n\r\n"},
		{"invalid length", "Content-Length: abc\r\n\r\n"},
		{"negative length", "Content-Length: -1\r\n\r\n"},
		{"truncated body", "Content-Length: 10\r\n\r\n{}"},
		{"truncated header", "Content-Length: 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFrameReader(strings.NewReader(tt.input), 0).Read()
			require.Error(t, err)
			// A broken frame must not look like a clean end of stream.
			assert.NotEqual(t, io.EOF, err)
		})
	}
}

func TestFrameReaderTooLargeStaysInSync(t *testing.T) {
	input := "Content-Length: 10\r\n\r\n0123456789" + "Content-Length: 2\r\n\r\n{}"
	r := NewFrameReader(strings.NewReader(input), 4)

	_, err := r.Read()
	var tooLarge *FrameTooLargeError
	require.True(t, errors.As(err, &tooLarge))
	assert.Equal(t, 10, tooLarge.Length)
	assert.Equal(t, 4, tooLarge.Max)

	msg, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(msg.Content))
}

func TestFrameWriterConcurrent(t *testing.T) {
	var buf bytes.Buffer
	w := NewFrameWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.Write(&Message{Content: []byte(`{"n":1}`)}))
		}()
	}
	wg.Wait()

	r := NewFrameReader(&buf, 0)
	count := 0
	for {
		msg, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, `{"n":1}`, string(msg.Content))
		count++
	}
	assert.Equal(t, 50, count)
}
