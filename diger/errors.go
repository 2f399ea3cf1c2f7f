package diger

import "errors"

// Leaf error kinds for the Cryptographic category of spec §7.
var (
	ErrDigestMismatch      = errors.New("diger: digest mismatch")
	ErrUnsupportedAlgorithm = errors.New("diger: unsupported algorithm")
)
