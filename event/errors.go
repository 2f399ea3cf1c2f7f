package event

import "errors"

var (
	ErrNonCanonicalJson  = errors.New("event: non-canonical json")
	ErrInvariantViolation = errors.New("event: invariant violation")
	ErrMissingField       = errors.New("event: missing required field")
)
