package delegation

import "errors"

var ErrNotTracked = errors.New("delegation: event is not a tracked pending delegation")
