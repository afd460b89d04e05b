package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Spec is one product specification. A value is either a single string
// or a list of strings.
type Spec struct {
	Key    string
	Values []string
	IsList bool
}

// Specifications is an ordered set of product specifications. It decodes
// from a JSON object and keeps the object's key order.
type Specifications []Spec

// UnmarshalJSON decodes an object whose values are strings or arrays of
// strings. Numbers and booleans are kept as their JSON text.
func (s *Specifications) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("specifications: expected object, got %v", tok)
	}

	var specs Specifications
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("specifications %q: %w", key, err)
		}

		spec, err := decodeSpec(key, raw)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = specs
	return nil
}

func decodeSpec(key string, raw json.RawMessage) (Spec, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) > 0 && raw[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return Spec{}, fmt.Errorf("specifications %q: %w", key, err)
		}
		values := make([]string, 0, len(items))
		for _, item := range items {
			values = append(values, scalarText(item))
		}
		return Spec{Key: key, Values: values, IsList: true}, nil
	default:
		return Spec{Key: key, Values: []string{scalarText(raw)}}, nil
	}
}

func scalarText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	return string(bytes.TrimSpace(raw))
}

// MarshalJSON encodes the specifications as an object in order.
func (s Specifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, spec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(spec.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var value any = ""
		if spec.IsList {
			value = spec.Values
			if spec.Values == nil {
				value = []string{}
			}
		} else if len(spec.Values) > 0 {
			value = spec.Values[0]
		}
		b, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
