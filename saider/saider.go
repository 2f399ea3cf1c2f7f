// Package saider computes and verifies self-addressing digests embedded in
// the very structure they digest, per spec §4.4.
package saider

import (
	"fmt"
	"strings"

	"github.com/forestrie/go-keri/canon"
	"github.com/forestrie/go-keri/codex"
	"github.com/forestrie/go-keri/diger"
	"github.com/forestrie/go-keri/matter"
)

// DefaultField is the conventional SAID field name used across KEL/TEL
// events and ACDCs.
const DefaultField = "d"

// Saidify deep-clones obj, sets obj[field] to a placeholder of the
// CESR-text length of code's digest, canonicalizes and digests it, then
// returns both the resulting SAID and a clone of obj with the real SAID
// in place of the placeholder.
func Saidify(obj map[string]any, field string, code string) (said string, out map[string]any, err error) {
	if field == "" {
		field = DefaultField
	}
	if code == "" {
		code = diger.DefaultCode
	}
	s, err := codex.Lookup(code)
	if err != nil {
		return "", nil, err
	}

	work := deepCloneMap(obj)
	work[field] = strings.Repeat("#", s.FS)

	ser, err := canon.MarshalMap(work)
	if err != nil {
		return "", nil, err
	}
	d, err := diger.Compute(ser, code)
	if err != nil {
		return "", nil, err
	}
	said, err = d.QB64()
	if err != nil {
		return "", nil, err
	}

	out = deepCloneMap(obj)
	out[field] = said
	return said, out, nil
}

// VerifySaid replaces obj[field] with a placeholder of matching length,
// recomputes the digest, and checks equality against the embedded SAID.
func VerifySaid(obj map[string]any, field string) (bool, error) {
	if field == "" {
		field = DefaultField
	}
	saidVal, ok := obj[field]
	if !ok {
		return false, ErrFieldMissing
	}
	said, ok := saidVal.(string)
	if !ok || said == "" {
		return false, ErrFieldMissing
	}

	code, _, err := matter.DecodeText(said)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDigestMismatch, err)
	}

	work := deepCloneMap(obj)
	work[field] = strings.Repeat("#", len(said))

	ser, err := canon.MarshalMap(work)
	if err != nil {
		return false, err
	}
	d, err := diger.Compute(ser, code)
	if err != nil {
		return false, err
	}
	recomputed, err := d.QB64()
	if err != nil {
		return false, err
	}
	return recomputed == said, nil
}

func deepCloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCloneValue(v)
	}
	return out
}

func deepCloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCloneValue(e)
		}
		return out
	default:
		return v
	}
}
