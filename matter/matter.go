// Package matter implements the generic CESR primitive: a (code, raw)
// pair that round-trips losslessly between a 24-bit-aligned binary form
// and a base64url textual form with lead-byte padding, per spec §4.1.
package matter

import (
	"fmt"

	"github.com/forestrie/go-keri/codex"
)

// Matter is a single CESR primitive: a symbolic code and its raw payload.
type Matter struct {
	code string
	raw  []byte
}

// New builds a Matter, validating raw against the codex entry for code.
func New(code string, raw []byte) (Matter, error) {
	s, err := codex.Lookup(code)
	if err != nil {
		return Matter{}, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	if len(raw) != s.RS {
		return Matter{}, fmt.Errorf("%w: code %q wants %d raw bytes, got %d", ErrInvalidCode, code, s.RS, len(raw))
	}
	return Matter{code: code, raw: raw}, nil
}

// Code returns the primitive's code.
func (m Matter) Code() string { return m.code }

// Raw returns the primitive's raw payload bytes.
func (m Matter) Raw() []byte { return m.raw }

// QB64 renders the primitive in its textual (qualified base64) form.
func (m Matter) QB64() (string, error) {
	return EncodeText(m.code, m.raw)
}

// QB2 renders the primitive in its binary form.
func (m Matter) QB2() ([]byte, error) {
	return EncodeBinary(m.code, m.raw)
}
