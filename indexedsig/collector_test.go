package indexedsig

import (
	"testing"

	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/signer"
	"github.com/forestrie/go-keri/tholder"
)

func TestCollector_ThresholdSatisfaction(t *testing.T) {
	message := []byte("framed event text")
	signers := make([]*signer.Signer, 3)
	verfers := make([]signer.Verfer, 3)
	for i := range signers {
		s, err := signer.New(nil, true)
		if err != nil {
			t.Fatalf("signer.New: %v", err)
		}
		signers[i] = s
		verfers[i] = s.Verfer()
	}

	c := NewCollector(message, verfers)
	th, err := tholder.Parse(2)
	if err != nil {
		t.Fatalf("tholder.Parse: %v", err)
	}
	if c.Satisfied(th) {
		t.Fatalf("threshold satisfied with zero contributions")
	}

	sig0, _ := signers[0].Sign(message, 0)
	ok, err := c.Add(event.IndexedSig{Idx: 0, Sig: sig0})
	if err != nil || !ok {
		t.Fatalf("Add(0): ok=%v err=%v", ok, err)
	}
	if c.Satisfied(th) {
		t.Fatalf("threshold satisfied with one of two required contributions")
	}

	sig2, _ := signers[2].Sign(message, 2)
	if ok, err := c.Add(event.IndexedSig{Idx: 2, Sig: sig2}); err != nil || !ok {
		t.Fatalf("Add(2): ok=%v err=%v", ok, err)
	}
	if !c.Satisfied(th) {
		t.Fatalf("threshold not satisfied with two valid contributions")
	}

	// A duplicate contribution at the same index does not double-count.
	if ok, err := c.Add(event.IndexedSig{Idx: 2, Sig: sig2}); err != nil || !ok {
		t.Fatalf("Add(2) again: ok=%v err=%v", ok, err)
	}
	if len(c.Indices()) != 2 {
		t.Fatalf("duplicate index inflated the contribution count: %v", c.Indices())
	}
}

func TestCollector_BadSignatureRejected(t *testing.T) {
	message := []byte("framed event text")
	s, err := signer.New(nil, true)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	other, err := signer.New(nil, true)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	c := NewCollector(message, []signer.Verfer{s.Verfer()})

	badSig, _ := other.Sign(message, 0)
	if ok, err := c.Add(event.IndexedSig{Idx: 0, Sig: badSig}); ok || err == nil {
		t.Fatalf("expected rejection of a signature from an unrelated key")
	}
}

func TestCollector_IndexOutOfRange(t *testing.T) {
	c := NewCollector([]byte("m"), nil)
	if _, err := c.Add(event.IndexedSig{Idx: 0, Sig: []byte("x")}); err == nil {
		t.Fatalf("expected ErrIndexOutOfRange")
	}
}
