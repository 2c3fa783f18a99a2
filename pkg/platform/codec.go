// Package platform carries messages between Go and the native host runtime.
// Go code calls host syscalls over method channels and receives the host's
// generic event stream over event channels.
package platform

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/tidwall/gjson"
)

// Codec converts syscall arguments and results to and from host bytes.
type Codec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// JSONCodec is the host wire codec. Numbers decode as json.Number so 64-bit
// native handles survive the round trip; use ToInt64 to read them.
type JSONCodec struct{}

// Encode serializes value. A nil value encodes as JSON null.
func (JSONCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode deserializes data. Empty input decodes to nil.
func (JSONCodec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}
	return v, nil
}

// DefaultCodec is the codec used by method channels and bridges.
var DefaultCodec Codec = JSONCodec{}

// unwrapEnvelope extracts the payload of a host reply of the form
// {"result": ...} or {"error": {"code": ..., "message": ...}}. A reply with
// neither member, or no reply at all, is a nil result.
func unwrapEnvelope(reply []byte) ([]byte, error) {
	if len(reply) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(reply) {
		return nil, ErrMalformedReply
	}
	res := gjson.ParseBytes(reply)
	if e := res.Get("error"); e.Exists() {
		ce := NewChannelError(e.Get("code").String(), e.Get("message").String())
		if d := e.Get("details"); d.Exists() {
			ce.Details = d.Value()
		}
		return nil, ce
	}
	r := res.Get("result")
	if !r.Exists() {
		return nil, nil
	}
	return []byte(r.Raw), nil
}
