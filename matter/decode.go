package matter

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/forestrie/go-keri/codex"
)

// DecodeText inverts EncodeText: it reads cs from the static prefix table,
// restores the stripped lead characters to 'A'-padding, base64-decodes,
// and strips ps bytes from the front.
func DecodeText(text string) (code string, raw []byte, err error) {
	cs, err := codex.HardSize(text)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	if len(text) < cs {
		return "", nil, fmt.Errorf("%w: text shorter than code size %d", ErrTruncatedInput, cs)
	}
	code = text[:cs]
	s, err := codex.Lookup(code)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	if len(text) != s.FS {
		return "", nil, fmt.Errorf("%w: expected %d characters for code %q, got %d", ErrTruncatedInput, s.FS, code, len(text))
	}
	if len(text)%4 != 0 {
		return "", nil, fmt.Errorf("%w: text length %d is not a multiple of 4", ErrNonCanonicalBase64, len(text))
	}

	restored := strings.Repeat("A", cs) + text[cs:]
	padded, err := base64.RawURLEncoding.DecodeString(restored)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrNonCanonicalBase64, err)
	}

	ps := (3 - s.RS%3) % 3
	if len(padded) != ps+s.RS {
		return "", nil, fmt.Errorf("%w: decoded payload length %d, want %d", ErrPaddingMismatch, len(padded), ps+s.RS)
	}
	for _, b := range padded[:ps] {
		if b != 0 {
			return "", nil, ErrPaddingMismatch
		}
	}
	raw = make([]byte, s.RS)
	copy(raw, padded[ps:])
	return code, raw, nil
}

// DecodeBinary inverts EncodeBinary by re-deriving the text form (binary
// and text carry identical bits, just packed 8 vs 6 bits per unit) and
// delegating to DecodeText.
func DecodeBinary(bin []byte) (code string, raw []byte, err error) {
	text := base64.RawURLEncoding.EncodeToString(bin)
	return DecodeText(text)
}
