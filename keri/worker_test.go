package keri

import (
	"context"
	"testing"

	"github.com/forestrie/go-keri/escrow"
	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/indexer"
	"github.com/forestrie/go-keri/kel"
	"github.com/forestrie/go-keri/kvstore"
	"github.com/forestrie/go-keri/kvstore/memstore"
	"github.com/forestrie/go-keri/receipt"
	"github.com/forestrie/go-keri/signer"
	"github.com/forestrie/go-keri/tel"
)

func newTestWorker(t *testing.T) (*Worker, kvstore.Store) {
	t.Helper()
	store := memstore.New()
	ix, err := indexer.New(store)
	if err != nil {
		t.Fatalf("indexer.New: %v", err)
	}
	w := NewWorker(store, ix, escrow.New(0), nil, nil, 8)
	return w, store
}

func signAll(t *testing.T, signers []*signer.Signer, text []byte) []event.IndexedSig {
	t.Helper()
	out := make([]event.IndexedSig, len(signers))
	for i, s := range signers {
		sig, err := s.Sign(text, i)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		out[i] = event.IndexedSig{Idx: i, Sig: sig}
	}
	return out
}

func TestWorkerIngestsInception(t *testing.T) {
	w, store := newTestWorker(t)
	ctx := context.Background()

	s0, err := signer.New(nil, true)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	nextS, err := signer.New(nil, true)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	v0 := nextS.Verfer()
	v0qb64, err := v0.QB64()
	if err != nil {
		t.Fatalf("QB64: %v", err)
	}
	nextDigest, err := kel.NextKeyDigest(v0qb64, "")
	if err != nil {
		t.Fatalf("NextKeyDigest: %v", err)
	}

	text, ked, _, err := kel.Inception(kel.InceptionParams{
		Keys: []string{mustQB64(t, s0)},
		Next: []string{nextDigest},
	})
	if err != nil {
		t.Fatalf("kel.Inception: %v", err)
	}
	aid, _ := ked[event.FieldSubject].(string)

	result := make(chan error, 1)
	w.Submit(IngestRequest{Ctx: ctx, Kind: KindKELEvent, LogID: aid, KED: ked, Result: result})
	go w.Run(ctxWithCancel(t))
	if err := <-result; err != nil {
		t.Fatalf("ingest icp: %v", err)
	}

	stored, found, err := store.Get(ctx, kvstore.KELKey(aid, "0"))
	if err != nil || !found || len(stored) == 0 {
		t.Fatalf("KEL event not persisted: found=%v err=%v", found, err)
	}

	records, err := w.index.List(ctx, aid)
	if err != nil {
		t.Fatalf("index.List: %v", err)
	}
	if len(records) != 1 || records[0].Sequence != 0 {
		t.Fatalf("index records = %+v", records)
	}

	_ = text
}

func mustQB64(t *testing.T, s *signer.Signer) string {
	t.Helper()
	q, err := s.Verfer().QB64()
	if err != nil {
		t.Fatalf("QB64: %v", err)
	}
	return q
}

func ctxWithCancel(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// Two signers each submit their own Partial contribution to a 2-of-2 ixn;
// the event only persists once the second contribution satisfies the
// threshold, exercising the escrow wiring of spec §5.1.
func TestWorkerEscrowsMultiSigInteraction(t *testing.T) {
	w, store := newTestWorker(t)
	ctx := context.Background()
	go w.Run(ctxWithCancel(t))

	s0, err := signer.New(nil, true)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	s1, err := signer.New(nil, true)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}

	icpText, icpKed, icpState, err := kel.Inception(kel.InceptionParams{
		Keys:    []string{mustQB64(t, s0), mustQB64(t, s1)},
		KT:      2,
		KTGiven: true,
	})
	if err != nil {
		t.Fatalf("kel.Inception: %v", err)
	}
	aid, _ := icpKed[event.FieldSubject].(string)
	icpSigs := signAll(t, []*signer.Signer{s0, s1}, icpText)

	icpResult := make(chan error, 1)
	w.Submit(IngestRequest{Ctx: ctx, Kind: KindKELEvent, LogID: aid, KED: icpKed, Sigs: icpSigs, Result: icpResult})
	if err := <-icpResult; err != nil {
		t.Fatalf("ingest icp: %v", err)
	}

	ixnText, ixnKed, _, err := kel.Interaction(icpState, kel.InteractionParams{})
	if err != nil {
		t.Fatalf("kel.Interaction: %v", err)
	}
	ixnSaid, _ := ixnKed[event.FieldSaid].(string)
	sig0, err := s0.Sign(ixnText, 0)
	if err != nil {
		t.Fatalf("sign(0): %v", err)
	}
	sig1, err := s1.Sign(ixnText, 1)
	if err != nil {
		t.Fatalf("sign(1): %v", err)
	}

	r0 := make(chan error, 1)
	w.Submit(IngestRequest{Ctx: ctx, Kind: KindKELEvent, LogID: aid, KED: ixnKed, Sigs: []event.IndexedSig{{Idx: 0, Sig: sig0}}, Partial: true, Result: r0})
	if err := <-r0; err != nil {
		t.Fatalf("partial contribution 0: %v", err)
	}
	if _, found, _ := store.Get(ctx, kvstore.KELKey(aid, "1")); found {
		t.Fatalf("ixn persisted before threshold met")
	}

	r1 := make(chan error, 1)
	w.Submit(IngestRequest{Ctx: ctx, Kind: KindKELEvent, LogID: aid, KED: ixnKed, Sigs: []event.IndexedSig{{Idx: 1, Sig: sig1}}, Partial: true, Result: r1})
	if err := <-r1; err != nil {
		t.Fatalf("partial contribution 1: %v", err)
	}

	stored, found, err := store.Get(ctx, kvstore.KELKey(aid, "1"))
	if err != nil || !found || len(stored) == 0 {
		t.Fatalf("ixn not persisted after threshold met: found=%v err=%v", found, err)
	}

	entry, ok := w.pipeline.Get(ixnSaid)
	if !ok || entry.Stage != escrow.StageCompleted {
		t.Fatalf("escrow entry after completion = %+v", entry)
	}
}

// A registry inception with a backer threshold escrows on witness receipts
// rather than on any signature collection: it completes only once enough
// distinct backers submit a verified receipt over its SAID.
func TestWorkerEscrowsRegistryInceptionOnWitnessReceipts(t *testing.T) {
	w, store := newTestWorker(t)
	ctx := context.Background()
	go w.Run(ctxWithCancel(t))

	backer, err := signer.New(nil, false)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	backerAID, err := backer.Verfer().QB64()
	if err != nil {
		t.Fatalf("QB64: %v", err)
	}

	_, vcpKed, regState, err := tel.RegistryInception(tel.RegistryInceptionParams{
		Issuer:  "EissuerAID",
		Backers: []string{backerAID},
		BackerT: 1,
	})
	if err != nil {
		t.Fatalf("RegistryInception: %v", err)
	}
	vcpSaid, _ := vcpKed[event.FieldSaid].(string)

	result := make(chan error, 1)
	w.Submit(IngestRequest{Ctx: ctx, Kind: KindTELEvent, LogID: regState.RegistryID, KED: vcpKed, Anchored: true, Partial: true, Result: result})
	if err := <-result; err != nil {
		t.Fatalf("submit vcp: %v", err)
	}
	if _, found, _ := store.Get(ctx, kvstore.TELKey(regState.RegistryID, "0")); found {
		t.Fatalf("vcp persisted before any witness receipt")
	}

	env, err := receipt.Sign(vcpSaid, backerAID, backer)
	if err != nil {
		t.Fatalf("receipt.Sign: %v", err)
	}
	if err := w.SubmitWitnessReceipt(vcpSaid, env); err != nil {
		t.Fatalf("SubmitWitnessReceipt: %v", err)
	}

	stored, found, err := store.Get(ctx, kvstore.TELKey(regState.RegistryID, "0"))
	if err != nil || !found || len(stored) == 0 {
		t.Fatalf("vcp not persisted after witness receipt: found=%v err=%v", found, err)
	}
}

func TestWorkerIngestsRegistryInception(t *testing.T) {
	w, store := newTestWorker(t)
	ctx := context.Background()

	_, vcpKed, regState, err := tel.RegistryInception(tel.RegistryInceptionParams{Issuer: "EissuerAID"})
	if err != nil {
		t.Fatalf("RegistryInception: %v", err)
	}

	result := make(chan error, 1)
	w.Submit(IngestRequest{Ctx: ctx, Kind: KindTELEvent, LogID: regState.RegistryID, KED: vcpKed, Anchored: true, Result: result})
	go w.Run(ctxWithCancel(t))
	if err := <-result; err != nil {
		t.Fatalf("ingest vcp: %v", err)
	}

	stored, found, err := store.Get(ctx, kvstore.TELKey(regState.RegistryID, "0"))
	if err != nil || !found || len(stored) == 0 {
		t.Fatalf("TEL event not persisted: found=%v err=%v", found, err)
	}
}
