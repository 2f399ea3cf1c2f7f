package indexer

import "errors"

var (
	ErrLogNotFound    = errors.New("indexer: no projection held for that log SAID")
	ErrRecordNotFound = errors.New("indexer: no record at that sequence")
)
