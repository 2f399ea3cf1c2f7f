// Package kvstore is the storage contract the persistence-bearing parts of
// the core (indexer and the keri worker) depend on, per §6.3 - never a
// concrete adapter. Grounded on the teacher's narrow,
// context.Context-qualified storage interfaces (massifs/storage.Reader and
// friends).
package kvstore

import "context"

// Store is the key-value contract the core persists through. Get and List
// never error on a missing key/prefix; they report absence through their
// bool/empty-slice return instead, reserving the error return for
// transport/backend failures.
type Store interface {
	// Get retrieves the value for key. found is false, err is nil when the
	// key does not exist.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put writes value at key. With IfAbsent(), Put returns ErrAlreadyExists
	// instead of overwriting an existing value - an atomic put-if-absent
	// (§5). The escrow pipeline keeps its entries in memory and does not
	// call it.
	Put(ctx context.Context, key string, value []byte, opts ...PutOption) error

	// Del removes key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error

	// List returns every key with the given prefix, in lexicographic order.
	List(ctx context.Context, prefix string) ([]string, error)
}
