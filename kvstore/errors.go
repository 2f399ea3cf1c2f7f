package kvstore

import "errors"

var (
	ErrNotFound      = errors.New("kvstore: key not found")
	ErrAlreadyExists = errors.New("kvstore: key already exists")
)
