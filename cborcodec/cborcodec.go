// Package cborcodec wraps fxamacker/cbor/v2 with the deterministic
// encoding/decoding options the indexer (§4.13) and receipt envelopes
// (§3.6) require: sorted map keys, shortest-form integers, no
// indefinite-length items, no duplicate map keys on decode. Grounded on the
// teacher's massifs.NewCBORCodec / massifs/cbor deterministic-options
// pattern.
package cborcodec

import (
	"github.com/fxamacker/cbor/v2"
)

// Codec holds a matched pair of deterministic encode/decode modes.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// New builds a Codec using RFC 8949 §4.2 core deterministic encoding: map
// keys sorted by their encoded bytes (the bytewise-lexicographic "canonical
// CBOR" order), shortest-form integers, and no indefinite-length items.
// Decoding rejects duplicate map keys and indefinite-length items, mirroring
// the encoder's guarantees.
func New() (Codec, error) {
	encOpts := cbor.CanonicalEncOptions()
	enc, err := encOpts.EncMode()
	if err != nil {
		return Codec{}, err
	}
	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		IntDec:      cbor.IntDecConvertNone,
		TagsMd:      cbor.TagsForbidden,
	}
	dec, err := decOpts.DecMode()
	if err != nil {
		return Codec{}, err
	}
	return Codec{enc: enc, dec: dec}, nil
}

// Marshal renders v as deterministic CBOR.
func (c Codec) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

// Unmarshal decodes deterministic CBOR into v.
func (c Codec) Unmarshal(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
