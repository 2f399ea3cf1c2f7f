package memstore

import (
	"context"
	"testing"

	"github.com/forestrie/go-keri/kvstore"
)

func TestStore_GetPutDel(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, found, err := s.Get(ctx, "k"); err != nil || found {
		t.Fatalf("Get on empty store: found=%v err=%v", found, err)
	}
	if err := s.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, found, err := s.Get(ctx, "k")
	if err != nil || !found || string(v) != "v1" {
		t.Fatalf("Get after Put: v=%q found=%v err=%v", v, found, err)
	}
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("key still present after Del")
	}
}

func TestStore_PutIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	err := s.Put(ctx, "k", []byte("v2"), kvstore.IfAbsent())
	if err == nil {
		t.Fatalf("expected ErrAlreadyExists")
	}
	v, _, _ := s.Get(ctx, "k")
	if string(v) != "v1" {
		t.Fatalf("IfAbsent put overwrote existing value: %q", v)
	}
}

func TestStore_ListPrefix(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, k := range []string{"kel/A/0", "kel/A/1", "tel/B/0"} {
		if err := s.Put(ctx, k, []byte("x")); err != nil {
			t.Fatalf("Put(%s): %v", k, err)
		}
	}
	got, err := s.List(ctx, "kel/A/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0] != "kel/A/0" || got[1] != "kel/A/1" {
		t.Fatalf("List(kel/A/) = %v", got)
	}
}
