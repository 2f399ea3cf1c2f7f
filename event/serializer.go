package event

import (
	"fmt"
	"strings"

	"github.com/forestrie/go-keri/canon"
	"github.com/forestrie/go-keri/codex"
	"github.com/forestrie/go-keri/diger"
)

// Serialize implements spec §4.6: it fills the "v" field with a zero-sized
// placeholder, canonicalizes, overwrites the size digits with the actual
// size, and - when ked carries a "d" field - computes its SAID over the
// resulting framed form (with the "d" placeholder still in place) before
// emitting the final text. It returns the framed UTF-8 text, the declared
// size, and the finalized event dictionary (a clone of ked).
func Serialize(ked KED) (text []byte, size int, out KED, err error) {
	work := cloneKED(ked)

	hasSaid := false
	if _, ok := work[FieldSaid]; ok {
		hasSaid = true
		s, lookupErr := saidPlaceholder(work)
		if lookupErr != nil {
			return nil, 0, nil, lookupErr
		}
		work[FieldSaid] = s
	}

	work[FieldVersion] = placeholderVersion
	ser, err := canon.MarshalMap(work)
	if err != nil {
		return nil, 0, nil, err
	}
	size = len(ser)
	work[FieldVersion] = FormatVersion(size)

	if hasSaid {
		framed, err := canon.MarshalMap(work)
		if err != nil {
			return nil, 0, nil, err
		}
		d, err := diger.Compute(framed, diger.DefaultCode)
		if err != nil {
			return nil, 0, nil, err
		}
		said, err := d.QB64()
		if err != nil {
			return nil, 0, nil, err
		}
		work[FieldSaid] = said
	}

	final, err := canon.MarshalMap(work)
	if err != nil {
		return nil, 0, nil, err
	}
	if len(final) != size {
		return nil, 0, nil, fmt.Errorf("%w: framed size changed after said substitution (%d != %d)", ErrInvariantViolation, len(final), size)
	}
	return final, size, work, nil
}

// saidPlaceholder returns a "#"-filled placeholder the length of the
// default digest code's CESR text width (spec §4.4).
func saidPlaceholder(work KED) (string, error) {
	s, err := codex.Lookup(diger.DefaultCode)
	if err != nil {
		return "", err
	}
	return strings.Repeat("#", s.FS), nil
}

// ParseFramed parses a CESR-versioned event: it extracts the declared size
// from "v", validates the trailing JSON is exactly that long, and decodes
// it into a KED.
func ParseFramed(text []byte) (KED, error) {
	v, err := canon.Decode(text)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: framed event is not a JSON object", ErrNonCanonicalJson)
	}
	versionStr, ok := m[FieldVersion].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q field", ErrMissingField, FieldVersion)
	}
	size, err := ParseVersion(versionStr)
	if err != nil {
		return nil, err
	}
	if size != len(text) {
		return nil, fmt.Errorf("%w: declared size %d does not match actual length %d", ErrNonCanonicalJson, size, len(text))
	}
	return m, nil
}

func cloneKED(ked KED) KED {
	out := make(KED, len(ked))
	for k, v := range ked {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
