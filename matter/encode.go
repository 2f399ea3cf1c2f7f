package matter

import (
	"encoding/base64"
	"fmt"

	"github.com/forestrie/go-keri/codex"
)

// EncodeText implements spec §4.1's textual encoding algorithm:
//  1. ps = (3 - n mod 3) mod 3 zero lead-bytes.
//  2. padded = ZERO^ps || raw, base64url-encoded.
//  3. the first cs characters of the encoding are replaced by code.
//
// The result length is always codex.Sizes.FS, a multiple of 4.
func EncodeText(code string, raw []byte) (string, error) {
	s, err := codex.Lookup(code)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	if len(raw) != s.RS {
		return "", fmt.Errorf("%w: code %q wants %d raw bytes, got %d", ErrInvalidCode, code, s.RS, len(raw))
	}
	ps := (3 - len(raw)%3) % 3
	padded := make([]byte, ps+len(raw))
	copy(padded[ps:], raw)

	b64 := base64.RawURLEncoding.EncodeToString(padded)
	if len(b64) != s.FS {
		return "", fmt.Errorf("%w: computed text length %d does not match codex width %d for %q", ErrInvalidCode, len(b64), s.FS, code)
	}
	return code + b64[s.CS:], nil
}

// EncodeBinary implements the 24-bit aligned binary form: the same bits as
// the textual form, decoded from base64url into raw bytes. The code is
// recoverable from the binary form's leading bits the same way it is
// recoverable from the text form's leading characters, so DecodeBinary can
// invert this without being told the code in advance.
func EncodeBinary(code string, raw []byte) ([]byte, error) {
	text, err := EncodeText(code, raw)
	if err != nil {
		return nil, err
	}
	bin, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNonCanonicalBase64, err)
	}
	return bin, nil
}
