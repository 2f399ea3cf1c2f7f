// Package canon implements the canonical JSON serialization used for both
// SAIDs and signed payloads (spec §4.3). Divergence between the two would
// silently break verification, so there is exactly one code path here and
// everything else in the module calls through it.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Marshal produces canonical JSON for v: object keys are sorted
// lexicographically by codepoint (recursively), arrays keep their order,
// numbers are emitted without trailing zeros, and there is no insignificant
// whitespace. v must already be JSON-shaped (the output of json.Unmarshal
// into map[string]any / []any / primitives, plus []string arrays such as a
// weighted threshold's fraction list), not an arbitrary Go struct.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalMap is a convenience wrapper for the common case of a top-level
// event or document dictionary.
func MarshalMap(m map[string]any) ([]byte, error) {
	return Marshal(m)
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		return encodeString(buf, t)
	case json.Number:
		buf.WriteString(string(t))
		return nil
	case float64:
		return encodeNumber(buf, t)
	case map[string]any:
		return encodeObject(buf, t)
	case []any:
		return encodeArray(buf, t)
	case []string:
		a := make([]any, len(t))
		for i, s := range t {
			a[i] = s
		}
		return encodeArray(buf, a)
	default:
		return fmt.Errorf("canon: unsupported value type %T", v)
	}
}

func encodeObject(buf *bytes.Buffer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := encodeValue(buf, m[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, a []any) error {
	buf.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("canon: %w", err)
	}
	buf.Write(b)
	return nil
}

func encodeNumber(buf *bytes.Buffer, f float64) error {
	// json.Marshal on a float64 already drops insignificant trailing zeros
	// and avoids exponent notation for integral values in our value range.
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("canon: %w", err)
	}
	buf.Write(b)
	return nil
}

// Decode parses canonical (or any compliant) JSON into the any-tree shape
// that Marshal expects, using json.Number for numeric fidelity.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("canon: %w", err)
	}
	return normalizeNumbers(v), nil
}

// normalizeNumbers walks the decoded tree and returns json.Number leaves
// unchanged: Marshal writes a json.Number's text verbatim, so integers keep
// their original formatting.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			t[k] = normalizeNumbers(vv)
		}
		return t
	case []any:
		for i, vv := range t {
			t[i] = normalizeNumbers(vv)
		}
		return t
	default:
		return v
	}
}
