// Package record defines experiment records and their JSON form.
//
// A record is the three-element array the experiment runner consumes:
//
//	[condition, item_type, payload]
//
// where condition is a tag string or a [tag, item_number] pair.
package record

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/nearjson"
)

// Condition identifies the experimental condition of a record.
type Condition struct {
	// Tag is the condition name used for grouping and selection.
	Tag string

	// Item is the raw JSON item number of a [tag, item_number] pair,
	// nil for a scalar condition.
	Item json.RawMessage
}

// IsPair reports whether the condition was written as [tag, item_number].
func (c Condition) IsPair() bool {
	return c.Item != nil
}

// MarshalJSON writes a scalar tag or a [tag, item] pair.
func (c Condition) MarshalJSON() ([]byte, error) {
	tag, err := Marshal(c.Tag)
	if err != nil {
		return nil, err
	}
	if !c.IsPair() {
		return tag, nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(tag)
	buf.WriteByte(',')
	buf.Write(c.Item)
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts "tag" or ["tag", item]. Anything else is E_VALIDATION.
func (c *Condition) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if isJSONString(trimmed) {
		var tag string
		if err := json.Unmarshal(trimmed, &tag); err != nil {
			return errors.Wrap(errors.EParse, "invalid condition", err)
		}
		*c = Condition{Tag: tag}
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(trimmed, &pair); err != nil || len(pair) != 2 {
		return errors.New(errors.EValidation, "condition must be a string or a [tag, item_number] pair")
	}
	var tag string
	if err := json.Unmarshal(pair[0], &tag); err != nil {
		return errors.New(errors.EValidation, "condition tag must be a string")
	}
	var item bytes.Buffer
	if err := json.Compact(&item, pair[1]); err != nil {
		return errors.Wrap(errors.EParse, "invalid condition item", err)
	}
	*c = Condition{Tag: tag, Item: json.RawMessage(item.Bytes())}
	return nil
}

// Record is one experiment item: [condition, item_type, payload].
type Record struct {
	Condition Condition
	ItemType  string
	Payload   Payload
}

// WithRedo returns a copy of r whose payload has redo forced to true.
// Any previous redo value is overridden; r itself is not modified.
func (r Record) WithRedo() Record {
	r.Payload = r.Payload.With("redo", json.RawMessage("true"))
	return r
}

// MarshalJSON writes the three-element array form.
func (r Record) MarshalJSON() ([]byte, error) {
	cond, err := r.Condition.MarshalJSON()
	if err != nil {
		return nil, err
	}
	itemType, err := Marshal(r.ItemType)
	if err != nil {
		return nil, err
	}
	payload, err := r.Payload.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(cond)
	buf.WriteByte(',')
	buf.Write(itemType)
	buf.WriteByte(',')
	buf.Write(payload)
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the three-element array form. See Decode.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := Decode(data)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// Decode parses one JSON record. It returns E_PARSE unless data is exactly one
// JSON array of [condition, item_type, payload] with a string item_type and an
// object payload, and E_VALIDATION when the condition has the wrong shape.
func Decode(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var parts []json.RawMessage
	if err := dec.Decode(&parts); err != nil {
		return Record{}, errors.Wrap(errors.EParse, "invalid record: "+err.Error(), err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Record{}, errors.New(errors.EParse, "invalid record: trailing data after array")
	}
	if len(parts) != 3 {
		return Record{}, errors.New(errors.EParse, "record must be a JSON array of [condition, item_type, payload]")
	}

	var rec Record
	if err := rec.Condition.UnmarshalJSON(parts[0]); err != nil {
		return Record{}, err
	}
	if !isJSONString(parts[1]) {
		return Record{}, errors.New(errors.EParse, "item_type must be a string")
	}
	if err := json.Unmarshal(parts[1], &rec.ItemType); err != nil {
		return Record{}, errors.New(errors.EParse, "item_type must be a string")
	}
	if err := rec.Payload.UnmarshalJSON(parts[2]); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func isJSONString(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

// CleanLine trims whitespace and trailing commas from a materials line.
// A blank result means the line carries no record.
func CleanLine(line string) string {
	return strings.TrimRight(strings.TrimSpace(line), ",")
}

// ParseLine repairs one cleaned near-JSON line and decodes it as a record.
// Lexical problems and shape errors are E_PARSE.
func ParseLine(line string) (Record, error) {
	repaired, err := nearjson.Repair(line)
	if err != nil {
		return Record{}, errors.Wrap(errors.EParse, err.Error(), err)
	}
	return Decode([]byte(repaired))
}

// Marshal encodes v as compact JSON without HTML escaping, so markup in
// payloads (<p>, &amp;) is written as-is. All generated JSON goes through it.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
