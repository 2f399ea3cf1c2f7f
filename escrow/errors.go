package escrow

import "errors"

var (
	ErrUnknownEntry  = errors.New("escrow: no entry held for that SAID")
	ErrWrongStage    = errors.New("escrow: entry is not in the expected stage")
	ErrEscrowExpired = errors.New("escrow: entry exceeded its TTL in this stage")
)
