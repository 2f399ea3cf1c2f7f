package cborcodec

import "errors"

var ErrEncode = errors.New("cborcodec: encode failed")
