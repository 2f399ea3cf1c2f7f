// Package escrow implements the multi-signature escrow pipeline of spec
// §4.11: partial-signed, delegation-pending, witness-pending, and
// completed stages, each a pure function of its accumulated inputs.
// Re-delivery of an already-counted signature is idempotent, de-duplicated
// by (SAID, idx); a stage transition is one-way.
package escrow

import (
	"sync"
	"time"

	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/indexedsig"
	"github.com/forestrie/go-keri/receipt"
	"github.com/forestrie/go-keri/signer"
	"github.com/forestrie/go-keri/tholder"
)

// Stage names the four logical tables of §4.11.
type Stage string

const (
	StagePartialSigned     Stage = "gpse"
	StageDelegationPending Stage = "gdee"
	StageWitnessPending    Stage = "gpwe"
	StageCompleted         Stage = "cgms"
)

// Entry is one event progressing through the pipeline.
type Entry struct {
	SAID             string
	Text             []byte
	KED              event.KED
	Stage            Stage
	Delegator        string // "" unless the event is delegated
	DelegatorAnchorS string // the "s" (sequence, hex) the delegated event expects to be anchored at
	WitnessThreshold int
	witnesses        []signer.Verfer // the backer set receipts are checked against
	witnessesSeen    map[string]bool
	collector        *indexedsig.Collector
	threshold        tholder.Tholder
	updatedAt        time.Time
}

// Pipeline holds every in-flight escrowed event, keyed by SAID.
type Pipeline struct {
	mu  sync.Mutex
	now func() time.Time
	ttl time.Duration

	entries map[string]*Entry
}

// New builds an empty Pipeline. ttl <= 0 disables expiry.
func New(ttl time.Duration) *Pipeline {
	return &Pipeline{
		now:     time.Now,
		ttl:     ttl,
		entries: make(map[string]*Entry),
	}
}

// Open starts tracking a fully-built-but-unsigned event in StagePartialSigned.
// delegator is "" for a non-delegated event. witnesses is the backer set
// AddWitnessReceipt checks receipts against; it may be nil when
// witnessThreshold is 0.
func (p *Pipeline) Open(said string, text []byte, ked event.KED, verfers []signer.Verfer, th tholder.Tholder, delegator string, delegatorAnchorS string, witnessThreshold int, witnesses []signer.Verfer) *Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	e := &Entry{
		SAID:             said,
		Text:             text,
		KED:              ked,
		Stage:            StagePartialSigned,
		Delegator:        delegator,
		DelegatorAnchorS: delegatorAnchorS,
		WitnessThreshold: witnessThreshold,
		witnesses:        witnesses,
		witnessesSeen:    make(map[string]bool),
		collector:        indexedsig.NewCollector(text, verfers),
		threshold:        th,
		updatedAt:        p.now(),
	}
	p.entries[said] = e
	return e
}

// OpenWitnessPending starts tracking an event that carries no signature
// threshold of its own - a TEL registry event authorized by its backer
// set alone rather than a prior KEL key state - directly in
// StageWitnessPending (or StageCompleted when witnessThreshold is 0).
func (p *Pipeline) OpenWitnessPending(said string, text []byte, ked event.KED, witnessThreshold int, witnesses []signer.Verfer) *Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	stage := StageWitnessPending
	if witnessThreshold <= 0 {
		stage = StageCompleted
	}
	e := &Entry{
		SAID:             said,
		Text:             text,
		KED:              ked,
		Stage:            stage,
		WitnessThreshold: witnessThreshold,
		witnesses:        witnesses,
		witnessesSeen:    make(map[string]bool),
		updatedAt:        p.now(),
	}
	p.entries[said] = e
	return e
}

// Signatures returns the indexed signatures this entry has accumulated,
// in ascending index order - the complete batch to hand to the domain
// engine (kel.Accept) once the entry reaches StageCompleted.
func (e *Entry) Signatures() []event.IndexedSig {
	if e.collector == nil {
		return nil
	}
	return e.collector.Signatures()
}

// AddSignature records a partial contribution on an entry in
// StagePartialSigned and advances it once the threshold is met: directly to
// StageCompleted for a non-delegated event with WitnessThreshold 0, to
// StageDelegationPending for a delegated event, or to StageWitnessPending
// otherwise.
func (p *Pipeline) AddSignature(said string, sig event.IndexedSig) (Stage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[said]
	if !ok {
		return "", ErrUnknownEntry
	}
	if e.Stage != StagePartialSigned {
		return e.Stage, nil // idempotent re-delivery after the transition already happened
	}
	if err := p.checkExpiry(e); err != nil {
		return e.Stage, err
	}

	if _, err := e.collector.Add(sig); err != nil {
		return e.Stage, err
	}
	e.updatedAt = p.now()

	if !e.collector.Satisfied(e.threshold) {
		return e.Stage, nil
	}

	switch {
	case e.Delegator != "":
		e.Stage = StageDelegationPending
	case e.WitnessThreshold > 0:
		e.Stage = StageWitnessPending
	default:
		e.Stage = StageCompleted
	}
	return e.Stage, nil
}

// PromoteAnchored moves a delegation-pending entry to StageWitnessPending
// (or directly to StageCompleted when WitnessThreshold is 0), called by the
// delegation anchorer (§4.12) once it observes the matching anchor seal.
func (p *Pipeline) PromoteAnchored(said string) (Stage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[said]
	if !ok {
		return "", ErrUnknownEntry
	}
	if e.Stage != StageDelegationPending {
		return e.Stage, ErrWrongStage
	}
	if err := p.checkExpiry(e); err != nil {
		return e.Stage, err
	}

	if e.WitnessThreshold > 0 {
		e.Stage = StageWitnessPending
	} else {
		e.Stage = StageCompleted
	}
	e.updatedAt = p.now()
	return e.Stage, nil
}

// AddWitnessReceipt verifies a COSE_Sign1 receipt envelope against the
// entry's backer set before counting it: a bare witness AID is not proof
// of possession, so the envelope must verify over this entry's SAID and
// carry a key ID the entry actually lists as a backer. Counting is
// de-duplicated by witnessAID, and the entry completes once
// WitnessThreshold distinct witnesses have been seen.
func (p *Pipeline) AddWitnessReceipt(said string, envelope []byte) (Stage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[said]
	if !ok {
		return "", ErrUnknownEntry
	}
	if e.Stage != StageWitnessPending {
		return e.Stage, nil
	}
	if err := p.checkExpiry(e); err != nil {
		return e.Stage, err
	}

	witnessAID, err := receipt.Verify(envelope, said, e.witnesses)
	if err != nil {
		return e.Stage, err
	}

	e.witnessesSeen[witnessAID] = true
	e.updatedAt = p.now()
	if len(e.witnessesSeen) >= e.WitnessThreshold {
		e.Stage = StageCompleted
	}
	return e.Stage, nil
}

// Get returns the entry held for said, if any.
func (p *Pipeline) Get(said string) (*Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[said]
	return e, ok
}

// checkExpiry must be called with p.mu held.
func (p *Pipeline) checkExpiry(e *Entry) error {
	if p.ttl <= 0 {
		return nil
	}
	if p.now().Sub(e.updatedAt) > p.ttl {
		return ErrEscrowExpired
	}
	return nil
}
