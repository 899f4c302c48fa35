package packagejson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object that remembers the order of its keys. Values are
// kept encoded so unknown sections survive a rewrite untouched.
type Object struct {
	m *orderedmap.OrderedMap[string, json.RawMessage]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, json.RawMessage]()}
}

// ParseObject decodes a JSON object, keeping key order.
func ParseObject(data []byte) (*Object, error) {
	if !json.Valid(data) {
		return nil, errors.New("invalid JSON")
	}
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); trimmed[0] != '{' {
		return nil, errors.New("expected a JSON object")
	}

	o := NewObject()
	if err := o.m.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		var compact bytes.Buffer
		if err := json.Compact(&compact, pair.Value); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", pair.Key, err)
		}
		pair.Value = compact.Bytes()
	}
	return o, nil
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int { return o.m.Len() }

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.m.Get(key)
	return ok
}

// Raw returns the encoded value stored under key.
func (o *Object) Raw(key string) (json.RawMessage, bool) {
	return o.m.Get(key)
}

// String returns the value under key when it is a JSON string.
func (o *Object) String(key string) (string, bool) {
	raw, ok := o.m.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Object returns the nested object under key. A missing key yields a new
// empty object; a value of another type is an error.
func (o *Object) Object(key string) (*Object, error) {
	raw, ok := o.m.Get(key)
	if !ok {
		return NewObject(), nil
	}
	nested, err := ParseObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", key, err)
	}
	return nested, nil
}

// Set stores v under key. New keys are appended; existing keys keep their
// position.
func (o *Object) Set(key string, v any) error {
	raw, err := encode(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	o.m.Set(key, raw)
	return nil
}

// SortKeys orders the keys alphabetically, the way npm writes dependency maps.
func (o *Object) SortKeys() {
	keys := o.Keys()
	slices.Sort(keys)
	for _, k := range keys {
		_ = o.m.MoveToBack(k)
	}
}

// Clone returns a copy that can be modified independently.
func (o *Object) Clone() *Object {
	c := NewObject()
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		c.m.Set(pair.Key, pair.Value)
	}
	return c
}

// MarshalJSON encodes the object compactly in key order. Values go out as
// stored, so script commands keep their literal &, < and >.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := encode(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(pair.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Indented encodes the object with two-space indentation and a trailing
// newline, matching what npm writes.
func (o *Object) Indented() ([]byte, error) {
	compact, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
