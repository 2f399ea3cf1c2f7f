package acdc

import "errors"

var (
	ErrSchemaNotFound     = errors.New("acdc: schema SAID not registered")
	ErrSchemaMismatch     = errors.New("acdc: schema $id does not match its own SAID")
	ErrDataInvalid        = errors.New("acdc: attribute data does not validate against its schema")
	ErrAttributeSaid      = errors.New("acdc: attribute block SAID mismatch")
	ErrTopSaid            = errors.New("acdc: top-level SAID mismatch")
	ErrEdgeTargetMissing  = errors.New("acdc: edge target ACDC could not be resolved")
	ErrEdgeRegistryMissing = errors.New("acdc: edge target's registry TEL could not be resolved")
	ErrEdgeNotIssued      = errors.New("acdc: edge target credential is not in issued status")
	ErrInvariantViolation = errors.New("acdc: invariant violation")
)
