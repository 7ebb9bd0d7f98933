package record

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/NielsdaWheelz/mazegen/internal/errors"
)

// Payload is the type-specific field mapping of a record (html, s, a, redo, ...).
// Keys keep their source order and values are kept as compact raw JSON, so a
// payload re-serializes exactly as it was read. Payload values are immutable;
// With and Without return copies.
type Payload struct {
	keys   []string
	fields map[string]json.RawMessage
}

// Len returns the number of fields.
func (p Payload) Len() int {
	return len(p.keys)
}

// Keys returns the field names in order.
func (p Payload) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Get returns the raw JSON value of key.
func (p Payload) Get(key string) (json.RawMessage, bool) {
	v, ok := p.fields[key]
	return v, ok
}

// With returns a copy of p with key set to value. An existing key keeps its
// position; a new key is appended.
func (p Payload) With(key string, value json.RawMessage) Payload {
	out := p.clone()
	out.set(key, value)
	return out
}

// Without returns a copy of p with key removed.
func (p Payload) Without(key string) Payload {
	out := Payload{fields: make(map[string]json.RawMessage, len(p.fields))}
	for _, k := range p.keys {
		if k == key {
			continue
		}
		out.keys = append(out.keys, k)
		out.fields[k] = p.fields[k]
	}
	return out
}

// Map decodes the payload into a generic map. Numbers decode as json.Number.
func (p Payload) Map() (map[string]any, error) {
	out := make(map[string]any, len(p.keys))
	for _, k := range p.keys {
		dec := json.NewDecoder(bytes.NewReader(p.fields[k]))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (p Payload) clone() Payload {
	out := Payload{
		keys:   append([]string(nil), p.keys...),
		fields: make(map[string]json.RawMessage, len(p.fields)+1),
	}
	for k, v := range p.fields {
		out.fields[k] = v
	}
	return out
}

func (p *Payload) set(key string, value json.RawMessage) {
	if p.fields == nil {
		p.fields = make(map[string]json.RawMessage)
	}
	if _, ok := p.fields[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.fields[key] = value
}

// MarshalJSON writes the fields in order.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(p.fields[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping key order. A repeated key keeps
// its first position and its last value.
func (p *Payload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(errors.EParse, "invalid payload", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New(errors.EParse, "payload must be an object")
	}

	out := Payload{fields: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(errors.EParse, "invalid payload", err)
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New(errors.EParse, "payload key must be a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return errors.Wrap(errors.EParse, "invalid payload value for "+key, err)
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return errors.Wrap(errors.EParse, "invalid payload value for "+key, err)
		}
		out.set(key, json.RawMessage(compact.Bytes()))
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return errors.Wrap(errors.EParse, "invalid payload", err)
	}

	*p = out
	return nil
}
