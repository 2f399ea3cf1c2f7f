package indexedsig

import "errors"

var (
	ErrIndexOutOfRange = errors.New("indexedsig: signature index out of range of the key set")
	ErrBadSignature    = errors.New("indexedsig: signature does not verify against its indexed key")
)
