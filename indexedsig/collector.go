// Package indexedsig implements the threshold signer and indexed-signature
// representation of spec §4.10: a signature on an event is (idx, sig_bytes),
// idx being the signing key's position within the event's "k". The escrow
// pipeline (§4.11) accumulates these one contribution at a time as they
// arrive out of order from independent co-signers, which is what Collector
// models - kel's own verifyThreshold instead checks a complete batch
// in one step, for the simpler single-shot acceptance path.
package indexedsig

import (
	"sort"

	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/signer"
	"github.com/forestrie/go-keri/tholder"
)

// Collector accumulates indexed signatures on one event's framed text,
// verifying each as it arrives and de-duplicating by index.
type Collector struct {
	message []byte
	verfers []signer.Verfer
	good    map[int][]byte // idx -> signature
}

// NewCollector starts a collector for message, to be signed by the given
// ordered verfer set.
func NewCollector(message []byte, verfers []signer.Verfer) *Collector {
	return &Collector{
		message: message,
		verfers: verfers,
		good:    make(map[int][]byte),
	}
}

// Add verifies sig against verfers[sig.Idx] and, if it checks out, records
// the contribution. It returns whether the signature was valid; an
// out-of-range index or a signature that fails verification is reported
// but does not panic, so one bad contribution cannot block the others.
func (c *Collector) Add(sig event.IndexedSig) (bool, error) {
	if sig.Idx < 0 || sig.Idx >= len(c.verfers) {
		return false, ErrIndexOutOfRange
	}
	if !c.verfers[sig.Idx].Verify(c.message, sig.Sig) {
		return false, ErrBadSignature
	}
	c.good[sig.Idx] = sig.Sig
	return true, nil
}

// Indices returns the set of indices with a verified contribution so far,
// in ascending order.
func (c *Collector) Indices() []int {
	out := make([]int, 0, len(c.good))
	for i := range c.good {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Satisfied reports whether the accumulated contributions satisfy th.
func (c *Collector) Satisfied(th tholder.Tholder) bool {
	return th.Satisfied(c.Indices())
}

// Signatures returns the accumulated indexed signatures, in ascending
// index order.
func (c *Collector) Signatures() []event.IndexedSig {
	idxs := c.Indices()
	out := make([]event.IndexedSig, len(idxs))
	for i, idx := range idxs {
		out[i] = event.IndexedSig{Idx: idx, Sig: c.good[idx]}
	}
	return out
}
