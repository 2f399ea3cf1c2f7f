package kel

import "errors"

// Leaf error kinds for the State-machine and Delegation categories of spec
// §7 that apply to the KEL engine.
var (
	ErrOutOfOrderSequence    = errors.New("kel: out-of-order sequence")
	ErrPriorMismatch         = errors.New("kel: prior digest mismatch")
	ErrDuplicateEvent        = errors.New("kel: duplicate event")
	ErrThresholdNotMet       = errors.New("kel: threshold not met")
	ErrNextKeyDigestMismatch = errors.New("kel: next key digest mismatch")
	ErrTypeForbidden         = errors.New("kel: event type forbidden in this context")
	ErrDelegatorMissingAnchor = errors.New("kel: delegator missing anchor seal")
	ErrInvariantViolation    = errors.New("kel: invariant violation")
)
