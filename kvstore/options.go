package kvstore

// PutOptions collects the fields Put's functional options populate.
// Adapters type-assert the any they receive to *PutOptions; one that
// ignores an option it doesn't support is expected to fall through safely,
// following the teacher's storage.Option convention.
type PutOptions struct {
	IfAbsent bool
}

// PutOption configures a Put call.
type PutOption func(any)

// IfAbsent requests the atomic put-if-absent guarantee: Put fails with
// ErrAlreadyExists rather than overwriting an existing value.
func IfAbsent() PutOption {
	return func(o any) {
		if p, ok := o.(*PutOptions); ok {
			p.IfAbsent = true
		}
	}
}

// ApplyPutOptions folds opts into a PutOptions value, for adapter use.
func ApplyPutOptions(opts ...PutOption) PutOptions {
	var p PutOptions
	for _, o := range opts {
		o(&p)
	}
	return p
}
