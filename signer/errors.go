package signer

import "errors"

var (
	ErrSignatureInvalid = errors.New("signer: signature invalid")
	ErrBadSeedLength    = errors.New("signer: seed must be 32 bytes")
	ErrBadKeyLength     = errors.New("signer: verification key must be 32 bytes")
)
