// Package memstore is an in-process, map-backed kvstore.Store used by
// tests and by any caller without a persistence tier of its own. Grounded
// on the teacher's in-memory test storage doubles (testcontext.go,
// testlocalreadercontext.go).
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/forestrie/go-keri/kvstore"
)

// Store is a mutex-guarded map[string][]byte satisfying kvstore.Store.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte, opts ...kvstore.PutOption) error {
	p := kvstore.ApplyPutOptions(opts...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if p.IfAbsent {
		if _, exists := s.data[key]; exists {
			return kvstore.ErrAlreadyExists
		}
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0)
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

var _ kvstore.Store = (*Store)(nil)
