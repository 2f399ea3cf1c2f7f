// Package keri wires the codec, KEL, TEL, ACDC, escrow, delegation and
// indexer layers into the single-threaded cooperative ingestion worker of
// spec §5: one goroutine drains a buffered queue of IngestRequest values,
// processing each to completion before taking the next.
package keri

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/forestrie/go-keri/acdc"
	"github.com/forestrie/go-keri/canon"
	"github.com/forestrie/go-keri/delegation"
	"github.com/forestrie/go-keri/escrow"
	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/indexer"
	"github.com/forestrie/go-keri/kel"
	"github.com/forestrie/go-keri/kvstore"
	"github.com/forestrie/go-keri/tel"
)

// Worker is the single-threaded ingestion loop of spec §5. It owns every
// in-memory KEL and TEL the core currently tracks; callers reach it only
// through Submit, never by mutating its state directly.
type Worker struct {
	store    kvstore.Store
	index    *indexer.Index
	pipeline *escrow.Pipeline
	anchorer *delegation.Anchorer
	log      *zap.Logger
	queue    chan IngestRequest

	mu         sync.Mutex
	kels       map[string]*kel.KEL
	tels       map[string]*tel.TEL
	pendingKEL map[string]string // escrow SAID -> AID, while an entry awaits completion
	pendingTEL map[string]string // escrow SAID -> registry ID, while an entry awaits completion
}

// NewWorker builds a Worker with a queue of the given capacity. pipeline
// and anchorer may be nil when the deployment does not need multi-sig
// escrow or delegation anchoring.
func NewWorker(store kvstore.Store, index *indexer.Index, pipeline *escrow.Pipeline, anchorer *delegation.Anchorer, log *zap.Logger, queueCapacity int) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		store:      store,
		index:      index,
		pipeline:   pipeline,
		anchorer:   anchorer,
		log:        log,
		queue:      make(chan IngestRequest, queueCapacity),
		kels:       make(map[string]*kel.KEL),
		tels:       make(map[string]*tel.TEL),
		pendingKEL: make(map[string]string),
		pendingTEL: make(map[string]string),
	}
}

// Submit enqueues req for processing. It blocks if the queue is full.
func (w *Worker) Submit(req IngestRequest) {
	w.queue <- req.normalize()
}

// SubmitWitnessReceipt feeds a COSE_Sign1 receipt envelope into the escrow
// pipeline for the entry identified by said, completing and persisting the
// underlying KEL or TEL event once its witness/backer threshold is met.
// It is synchronous rather than queued: receipts arrive independently of
// the event queue and do not need the per-log serialization Run provides.
func (w *Worker) SubmitWitnessReceipt(said string, envelope []byte) error {
	if w.pipeline == nil {
		return ErrNoPipeline
	}
	stage, err := w.pipeline.AddWitnessReceipt(said, envelope)
	if err != nil {
		return err
	}
	if stage != escrow.StageCompleted {
		return nil
	}
	return w.completeEscrowed(context.Background(), said)
}

// Run drains the queue until ctx is done or the queue is closed, processing
// each request to completion before taking the next (spec §5: the per-log
// serialization boundary coincides with the atomicity boundary). Callers
// run Run in its own goroutine - Run itself never spawns one, matching
// "single-threaded cooperative computation over an event queue".
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-w.queue:
			if !ok {
				return
			}
			w.process(req)
		}
	}
}

func (w *Worker) process(req IngestRequest) {
	var err error
	switch req.Kind {
	case KindKELEvent:
		err = w.processKEL(req)
	case KindTELEvent:
		err = w.processTEL(req)
	case KindACDC:
		err = w.processACDC(req)
	default:
		err = ErrUnknownKind
	}
	if err != nil {
		w.log.Warn("ingest failed",
			zap.String("request_id", req.requestID),
			zap.Int("kind", int(req.Kind)),
			zap.String("log_id", req.LogID),
			zap.Error(err))
	}
	req.reply(err)
}

// cancelledBeforePersist implements spec §5's cancellation rule: an
// ingestion in flight may be cancelled only before the persist step; once
// persisted, it runs to projection completion regardless of ctx.
func cancelledBeforePersist(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelledBeforePersist, err)
	}
	return nil
}

func (w *Worker) getOrCreateKEL(aid string) *kel.KEL {
	w.mu.Lock()
	defer w.mu.Unlock()
	k, ok := w.kels[aid]
	if !ok {
		k = &kel.KEL{}
		w.kels[aid] = k
	}
	return k
}

func (w *Worker) getOrCreateTEL(registryID string) *tel.TEL {
	w.mu.Lock()
	defer w.mu.Unlock()
	t, ok := w.tels[registryID]
	if !ok {
		t = tel.New()
		w.tels[registryID] = t
	}
	return t
}

// processKEL dispatches a KindKELEvent request. icp/dip and any
// non-partial rot/drt/ixn are accepted directly; a rot/drt/ixn marked
// Partial is instead threaded through the escrow pipeline (spec §5.1,
// §4.11) one signer's contribution at a time.
func (w *Worker) processKEL(req IngestRequest) error {
	aid := req.LogID
	k := w.getOrCreateKEL(aid)

	typ, _ := req.KED[event.FieldType].(string)
	successor := event.Type(typ) == event.Rot || event.Type(typ) == event.Drt || event.Type(typ) == event.Ixn
	if req.Partial && w.pipeline != nil && successor {
		return w.processKELEscrowed(req, k, aid)
	}

	if err := kel.Accept(k, req.KED, req.Sigs); err != nil {
		return err
	}
	if err := cancelledBeforePersist(req.Ctx); err != nil {
		return err
	}
	return w.finishKEL(req.Ctx, aid, k, req.KED)
}

// processKELEscrowed accumulates one signer's contribution to a rot/drt/ixn
// against the AID's prior key state (the threshold a successor event must
// satisfy is always the state as of the event it succeeds, per
// kel.acceptSuccessor). The entry is opened on first contact and tracked in
// pendingKEL until the pipeline reports it StageCompleted.
func (w *Worker) processKELEscrowed(req IngestRequest, k *kel.KEL, aid string) error {
	if len(k.Events) == 0 {
		return fmt.Errorf("%w: partial-signed successor event with no prior inception", kel.ErrOutOfOrderSequence)
	}
	if len(req.Sigs) != 1 {
		return fmt.Errorf("%w: a partial contribution carries exactly one signature", kel.ErrInvariantViolation)
	}
	said, _ := req.KED[event.FieldSaid].(string)
	if said == "" {
		return kel.ErrInvariantViolation
	}
	prior := k.State

	if _, ok := w.pipeline.Get(said); !ok {
		text, err := canon.MarshalMap(req.KED)
		if err != nil {
			return err
		}
		verfers, err := kel.VerfersFromQB64(prior.K)
		if err != nil {
			return err
		}

		witnessThreshold := prior.BT
		witnessTexts := prior.B
		if event.Type(typeOf(req.KED)) == event.Rot || event.Type(typeOf(req.KED)) == event.Drt {
			if raw, ok := req.KED[event.FieldB]; ok {
				wt, werr := stringsFromAny(raw)
				if werr != nil {
					return werr
				}
				witnessTexts = wt
				witnessThreshold, _ = strconv.Atoi(fmt.Sprint(req.KED[event.FieldBT]))
			}
		}
		witnesses, err := kel.VerfersFromQB64(witnessTexts)
		if err != nil {
			return err
		}

		seqHex, _ := req.KED[event.FieldSeq].(string)
		w.pipeline.Open(said, text, req.KED, verfers, prior.KT, prior.Delegator, seqHex, witnessThreshold, witnesses)

		w.mu.Lock()
		w.pendingKEL[said] = aid
		w.mu.Unlock()

		if prior.Delegator != "" && w.anchorer != nil {
			w.anchorer.Track(prior.Delegator, aid, said, seqHex)
		}
	}

	if _, err := w.pipeline.AddSignature(said, req.Sigs[0]); err != nil {
		return err
	}

	return w.completeEscrowed(req.Ctx, said)
}

// processTEL dispatches a KindTELEvent request. iss/rev and a vcp that
// isn't Partial are accepted directly; a Partial vcp is instead escrowed
// on its backer/witness threshold, since registry events carry no
// independent signature threshold of their own - their authorization
// flows through the anchoring KEL ixn, which is escrowed separately via
// processKELEscrowed.
func (w *Worker) processTEL(req IngestRequest) error {
	registryID := req.LogID
	t := w.getOrCreateTEL(registryID)

	typ, _ := req.KED[event.FieldType].(string)
	if req.Partial && w.pipeline != nil && event.Type(typ) == event.Vcp {
		return w.processTELEscrowed(req, t, registryID)
	}

	if err := tel.Accept(t, req.KED, req.Anchored); err != nil {
		return err
	}
	if err := cancelledBeforePersist(req.Ctx); err != nil {
		return err
	}
	return w.finishTEL(req.Ctx, registryID, t, req.KED)
}

// processTELEscrowed gates a registry inception on its backer set's
// receipts rather than on any signature collection: vcp's own anchored
// flag already certifies the issuing AID's KEL authorized this registry,
// so the only thing left to wait on here is backer availability.
func (w *Worker) processTELEscrowed(req IngestRequest, t *tel.TEL, registryID string) error {
	if !req.Anchored {
		return tel.ErrMissingAnchor
	}
	said, _ := req.KED[event.FieldSaid].(string)
	if said == "" {
		return tel.ErrInvariantViolation
	}

	if _, ok := w.pipeline.Get(said); !ok {
		text, err := canon.MarshalMap(req.KED)
		if err != nil {
			return err
		}
		bt, _ := strconv.Atoi(fmt.Sprint(req.KED[event.FieldBT]))
		backerTexts, err := stringsFromAny(req.KED[event.FieldB])
		if err != nil {
			return err
		}
		backers, err := kel.VerfersFromQB64(backerTexts)
		if err != nil {
			return err
		}
		w.pipeline.OpenWitnessPending(said, text, req.KED, bt, backers)

		w.mu.Lock()
		w.pendingTEL[said] = registryID
		w.mu.Unlock()
	}

	return w.completeEscrowed(req.Ctx, said)
}

// completeEscrowed persists the event tracked under said once the
// pipeline reports it StageCompleted, routing it back to whichever KEL or
// TEL opened it. It is the join point for both synchronous completion
// (the contribution that satisfies the threshold) and asynchronous
// completion (a later delegator anchor or witness receipt), so both paths
// persist through the same finishKEL/finishTEL code.
func (w *Worker) completeEscrowed(ctx context.Context, said string) error {
	entry, ok := w.pipeline.Get(said)
	if !ok || entry.Stage != escrow.StageCompleted {
		return nil
	}

	w.mu.Lock()
	aid, isKEL := w.pendingKEL[said]
	registryID, isTEL := w.pendingTEL[said]
	w.mu.Unlock()

	switch {
	case isKEL:
		return w.finishEscrowedKEL(ctx, aid, said, entry)
	case isTEL:
		return w.finishEscrowedTEL(ctx, registryID, said, entry)
	default:
		return nil
	}
}

func (w *Worker) finishEscrowedKEL(ctx context.Context, aid string, said string, entry *escrow.Entry) error {
	k := w.getOrCreateKEL(aid)
	if err := kel.Accept(k, entry.KED, entry.Signatures()); err != nil {
		return err
	}
	if err := cancelledBeforePersist(ctx); err != nil {
		return err
	}
	w.mu.Lock()
	delete(w.pendingKEL, said)
	w.mu.Unlock()
	return w.finishKEL(ctx, aid, k, entry.KED)
}

func (w *Worker) finishEscrowedTEL(ctx context.Context, registryID string, said string, entry *escrow.Entry) error {
	t := w.getOrCreateTEL(registryID)
	if err := tel.Accept(t, entry.KED, true); err != nil {
		return err
	}
	if err := cancelledBeforePersist(ctx); err != nil {
		return err
	}
	w.mu.Lock()
	delete(w.pendingTEL, said)
	w.mu.Unlock()
	return w.finishTEL(ctx, registryID, t, entry.KED)
}

// finishKEL persists an accepted KEL event, notifies the delegation
// anchorer of a new ixn's anchor seals, and appends its index record.
func (w *Worker) finishKEL(ctx context.Context, aid string, k *kel.KEL, ked event.KED) error {
	text, err := canon.MarshalMap(ked)
	if err != nil {
		return err
	}
	seqHex := fmt.Sprintf("%x", k.State.Seq)
	if err := w.store.Put(ctx, kvstore.KELKey(aid, seqHex), text); err != nil {
		return err
	}

	if w.anchorer != nil && event.Type(typeOf(ked)) == event.Ixn {
		if _, err := w.anchorer.OnDelegatorIxn(aid, ked); err != nil {
			return err
		}
	}

	return w.appendIndex(ctx, aid, k.State.Seq, k.State.LastSaid, ked, kelReferences(ked))
}

// finishTEL persists an accepted TEL event and appends its index record.
func (w *Worker) finishTEL(ctx context.Context, registryID string, t *tel.TEL, ked event.KED) error {
	text, err := canon.MarshalMap(ked)
	if err != nil {
		return err
	}
	seqHex := fmt.Sprintf("%x", t.State.Seq)
	if err := w.store.Put(ctx, kvstore.TELKey(registryID, seqHex), text); err != nil {
		return err
	}

	return w.appendIndex(ctx, registryID, t.State.Seq, t.State.LastSaid, ked, telReferences(ked))
}

// processACDC persists an already-built-and-verified ACDC (verification
// via acdc.Verify is the caller's responsibility before submission, since
// it needs schema and edge-resolution context the worker does not own).
func (w *Worker) processACDC(req IngestRequest) error {
	if err := cancelledBeforePersist(req.Ctx); err != nil {
		return err
	}
	said, _ := req.KED[event.FieldSaid].(string)
	if said == "" {
		return acdc.ErrInvariantViolation
	}
	text, err := canon.MarshalMap(req.KED)
	if err != nil {
		return err
	}
	if err := w.store.Put(req.Ctx, kvstore.ACDCKey(said), text); err != nil {
		return err
	}
	return w.appendIndex(req.Ctx, said, 0, said, req.KED, acdcReferences(req.KED))
}

func (w *Worker) appendIndex(ctx context.Context, logSaid string, seq int, eventSaid string, ked event.KED, refs []indexer.Reference) error {
	if w.index == nil {
		return nil
	}
	typ, _ := ked[event.FieldType].(string)
	prior, _ := ked[event.FieldPrior].(string)

	return w.index.Append(ctx, logSaid, indexer.Record{
		EventID:    eventSaid,
		EventType:  typ,
		Sequence:   seq,
		Prior:      prior,
		Timestamp:  time.Now().UTC(),
		References: refs,
	})
}

// typeOf extracts ked's "t" field, returning "" if absent or malformed.
func typeOf(ked event.KED) string {
	typ, _ := ked[event.FieldType].(string)
	return typ
}

// anchorReferences turns an event's anchor seals ("a") into RefEdge
// references - the generic cross-log pointer an ixn uses to bind its
// acceptance to some other log's event (spec §4.13).
func anchorReferences(ked event.KED) []indexer.Reference {
	raw, ok := ked[event.FieldAnchors].([]any)
	if !ok {
		return nil
	}
	var refs []indexer.Reference
	for _, a := range raw {
		m, ok := a.(map[string]any)
		if !ok {
			continue
		}
		seal, ok := event.SealFromMap(m)
		if !ok {
			continue
		}
		refs = append(refs, indexer.Reference{Kind: indexer.RefEdge, Target: seal.D})
	}
	return refs
}

// kelReferences populates a KEL event's index record with every reference
// kind it can carry: a delegated inception points back at its delegator's
// KEL (RefSignerKEL, the log whose ixn authorizes it), and any ixn's
// anchor seals are generic edges.
func kelReferences(ked event.KED) []indexer.Reference {
	var refs []indexer.Reference
	if event.Type(typeOf(ked)) == event.Dip {
		if delegator, _ := ked[event.FieldDelegator].(string); delegator != "" {
			refs = append(refs, indexer.Reference{Kind: indexer.RefSignerKEL, Target: delegator})
		}
	}
	refs = append(refs, anchorReferences(ked)...)
	return refs
}

// telReferences populates a TEL event's index record: a vcp points at its
// issuing AID's KEL and, when nested, its parent registry; a registry-level
// ixn's anchor seals name the child registries it admits; an iss/rev points
// at the credential it is tracking.
func telReferences(ked event.KED) []indexer.Reference {
	var refs []indexer.Reference
	switch event.Type(typeOf(ked)) {
	case event.Vcp:
		if issuer, _ := ked[event.FieldIssuer].(string); issuer != "" {
			refs = append(refs, indexer.Reference{Kind: indexer.RefIssuerKEL, Target: issuer})
		}
		if parent, _ := ked[event.FieldParent].(string); parent != "" {
			refs = append(refs, indexer.Reference{Kind: indexer.RefParentRegistry, Target: parent})
		}
	case event.Ixn:
		if raw, ok := ked[event.FieldAnchors].([]any); ok {
			for _, a := range raw {
				m, ok := a.(map[string]any)
				if !ok {
					continue
				}
				seal, ok := event.SealFromMap(m)
				if !ok {
					continue
				}
				refs = append(refs, indexer.Reference{Kind: indexer.RefChildRegistry, Target: seal.D})
			}
		}
	case event.Iss, event.Rev:
		if credSaid, _ := ked[event.FieldSubject].(string); credSaid != "" {
			refs = append(refs, indexer.Reference{Kind: indexer.RefCredentialRegistry, Target: credSaid})
		}
	}
	return refs
}

// acdcReferences populates an ACDC's index record: RefIssuerKEL for the
// issuing AID, RefCredentialRegistry for the registry it was issued into,
// and RefEdge for every edge's target SAID (edge["n"], per acdc.Verify).
func acdcReferences(doc event.KED) []indexer.Reference {
	var refs []indexer.Reference
	if issuer, _ := doc[event.FieldSubject].(string); issuer != "" {
		refs = append(refs, indexer.Reference{Kind: indexer.RefIssuerKEL, Target: issuer})
	}
	if registry, _ := doc[event.FieldRegistry].(string); registry != "" {
		refs = append(refs, indexer.Reference{Kind: indexer.RefCredentialRegistry, Target: registry})
	}
	edges, _ := doc["e"].(map[string]any)
	for name, raw := range edges {
		if name == event.FieldSaid {
			continue
		}
		edge, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		target, _ := edge["n"].(string)
		if target == "" {
			continue
		}
		refs = append(refs, indexer.Reference{Kind: indexer.RefEdge, Target: target})
	}
	return refs
}

// stringsFromAny converts a k/n/b array field, whether it is a freshly
// built []any or a []string carried over from a local construction path -
// the same coercion kel.Accept and tel.Accept apply to their own KED
// fields.
func stringsFromAny(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string array element", kel.ErrInvariantViolation)
			}
			out[i] = s
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: expected array field, got %T", kel.ErrInvariantViolation, raw)
	}
}
