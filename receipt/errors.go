package receipt

import "errors"

var (
	ErrUnknownWitness  = errors.New("receipt: signing witness not in the supplied verfer set")
	ErrNoSignature     = errors.New("receipt: message carries no COSE signature")
	ErrPayloadMismatch = errors.New("receipt: envelope payload does not match the expected said")
)
