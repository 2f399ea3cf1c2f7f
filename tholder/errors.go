package tholder

import "errors"

var (
	ErrInvalidForm  = errors.New("tholder: invalid threshold form")
	ErrEmptyWeights = errors.New("tholder: weighted threshold has no entries")
)
