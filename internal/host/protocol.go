package host

import (
	"encoding/json"
	"errors"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine"
)

// Request is a decoded command. ID is the raw JSON of the request id and is
// echoed verbatim in the response.
type Request struct {
	ID      string
	Command string
	Args    gjson.Result
}

// ParseRequest decodes a request body of the form
// {"id": ..., "command": "...", "args": {...}}.
func ParseRequest(data []byte) (Request, error) {
	if !gjson.ValidBytes(data) {
		return Request{ID: "null"}, badRequest("request is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	req := Request{ID: "null"}

	if id := root.Get("id"); id.Exists() {
		if id.Type != gjson.Number && id.Type != gjson.String {
			return req, badRequest("id must be a number or string")
		}
		req.ID = id.Raw
	}

	if !root.IsObject() {
		return req, badRequest("request must be an object")
	}

	command := root.Get("command")
	if command.Type != gjson.String || command.Str == "" {
		return req, badRequest("command must be a non-empty string")
	}
	req.Command = command.Str

	req.Args = root.Get("args")
	if req.Args.Exists() && !req.Args.IsObject() {
		return req, badRequest("args must be an object")
	}

	return req, nil
}

// uintArg reads a required non-negative integer argument no larger than max.
// Only plain integer literals are accepted; the value is parsed from the raw
// JSON so it is never rounded through float64.
func uintArg(args gjson.Result, name string, max uint64) (uint64, error) {
	v := args.Get(name)
	if !v.Exists() {
		return 0, badRequest("missing argument %q", name)
	}
	if v.Type != gjson.Number {
		return 0, badRequest("argument %q must be a number", name)
	}
	n, err := strconv.ParseUint(v.Raw, 10, 64)
	if err != nil || n > max {
		return 0, badRequest("argument %q must be an integer in [0, %d]", name, max)
	}
	return n, nil
}

// charArg reads a required argument holding exactly one character.
func charArg(args gjson.Result, name string) (rune, error) {
	v := args.Get(name)
	if v.Type != gjson.String {
		return 0, badRequest("argument %q must be a string", name)
	}
	// gjson decodes an unpaired surrogate escape to U+FFFD.
	if hasLoneSurrogate(v.Raw) {
		return 0, invalidChar(name)
	}
	ch, size := utf8.DecodeRuneInString(v.Str)
	if size == 0 || size != len(v.Str) {
		return 0, badRequest("argument %q must be exactly one character", name)
	}
	if ch == utf8.RuneError && size == 1 {
		return 0, invalidChar(name)
	}
	return ch, nil
}

func invalidChar(name string) error {
	return &RequestError{Kind: KindInvalidChar, Message: "argument " + name + " is not a valid character"}
}

// hasLoneSurrogate reports whether the raw JSON string contains a \uXXXX
// escape for a surrogate that is not part of a high/low pair.
func hasLoneSurrogate(raw string) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		r, ok := unicodeEscape(raw, i)
		if !ok {
			i++ // skip the escaped byte
			continue
		}
		i += 5
		if !utf16.IsSurrogate(r) {
			continue
		}
		if r >= 0xDC00 {
			return true
		}
		low, ok := unicodeEscape(raw, i+1)
		if !ok || low < 0xDC00 || low > 0xDFFF {
			return true
		}
		i += 6
	}
	return false
}

// unicodeEscape decodes the \uXXXX escape starting at raw[i].
func unicodeEscape(raw string, i int) (rune, bool) {
	if i+6 > len(raw) || raw[i] != '\\' || raw[i+1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(raw[i+2:i+6], 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// EncodeResult builds {"id": id, "result": result}. A nil result encodes
// as JSON null.
func EncodeResult(id string, result any) ([]byte, error) {
	out, err := sjson.SetRawBytes([]byte(`{}`), "id", []byte(id))
	if err != nil {
		return nil, err
	}

	raw := []byte("null")
	if result != nil {
		if raw, err = json.Marshal(result); err != nil {
			return nil, err
		}
	}
	return sjson.SetRawBytes(out, "result", raw)
}

// EncodeError builds {"id": id, "error": {"kind": ..., "message": ...}}.
// Out-of-bounds errors also carry the attempted value and the bound.
func EncodeError(id string, err error) ([]byte, error) {
	out, setErr := sjson.SetRawBytes([]byte(`{}`), "id", []byte(id))
	if setErr != nil {
		return nil, setErr
	}

	body := map[string]any{
		"kind":    string(KindOf(err)),
		"message": err.Error(),
	}
	var oob *engine.OutOfBoundsError
	if errors.As(err, &oob) {
		body["bound"] = oob.Kind.String()
		body["value"] = oob.Value
		body["max"] = oob.Max
	}
	return sjson.SetBytes(out, "error", body)
}
