package keri

import "errors"

var (
	ErrUnknownLog             = errors.New("keri: no KEL/TEL tracked under that log id")
	ErrUnknownKind            = errors.New("keri: unrecognized ingest request kind")
	ErrCancelledBeforePersist = errors.New("keri: ingestion cancelled before its persist step")
	ErrNoPipeline             = errors.New("keri: worker has no escrow pipeline configured")
)
