package saider

import "errors"

var (
	// ErrFieldMissing is returned when the SAID field is absent from a
	// document passed to Verify.
	ErrFieldMissing = errors.New("saider: said field missing")
	// ErrDigestMismatch indicates the recomputed digest does not match
	// the embedded SAID.
	ErrDigestMismatch = errors.New("saider: digest mismatch")
)
