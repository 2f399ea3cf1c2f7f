package matter

import "errors"

// Leaf error kinds for the Encoding category of spec §7.
var (
	ErrInvalidCode        = errors.New("matter: invalid code")
	ErrTruncatedInput     = errors.New("matter: truncated input")
	ErrPaddingMismatch    = errors.New("matter: padding mismatch")
	ErrNonCanonicalBase64 = errors.New("matter: non-canonical base64")
)
