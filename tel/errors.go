package tel

import "errors"

var (
	ErrTypeForbidden      = errors.New("tel: event type forbidden in this context")
	ErrOutOfOrderSequence = errors.New("tel: out-of-order sequence")
	ErrPriorMismatch      = errors.New("tel: prior digest mismatch")
	ErrMissingAnchor      = errors.New("tel: registry inception lacks a verified issuer-KEL anchor")
	ErrDoubleIssuance     = errors.New("tel: credential already issued")
	ErrRevokeBeforeIssue  = errors.New("tel: credential has no prior issuance to revoke")
	ErrAlreadyRevoked     = errors.New("tel: credential already revoked")
	ErrUnknownCredential  = errors.New("tel: credential not tracked in this registry")
	ErrInvariantViolation = errors.New("tel: invariant violation")
)
