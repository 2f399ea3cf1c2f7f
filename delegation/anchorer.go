// Package delegation implements the delegation anchorer of spec §4.12: it
// subscribes to a delegator's KEL ingestion and, on each accepted ixn,
// scans its anchor seals for a match against a locally tracked delegated
// event. A match promotes that event from escrow's gdee stage to gpwe.
package delegation

import (
	"sync"

	"github.com/forestrie/go-keri/escrow"
	"github.com/forestrie/go-keri/event"
)

type pendingAnchor struct {
	delegatedAID string
	seqHex       string
}

// Anchorer tracks delegated events awaiting an anchor seal from their
// delegator's KEL, and promotes them through pipeline once one arrives.
type Anchorer struct {
	mu       sync.Mutex
	pipeline *escrow.Pipeline
	pending  map[string]map[string]pendingAnchor // delegator AID -> {delegated event SAID -> expectation}
}

// New builds an Anchorer driving promotions through pipeline.
func New(pipeline *escrow.Pipeline) *Anchorer {
	return &Anchorer{
		pipeline: pipeline,
		pending:  make(map[string]map[string]pendingAnchor),
	}
}

// Track registers a delegated event's SAID as awaiting an anchor seal
// {i: delegatedAID, s: seqHex, d: said} from delegatorAID's KEL.
func (a *Anchorer) Track(delegatorAID string, delegatedAID string, said string, seqHex string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, ok := a.pending[delegatorAID]
	if !ok {
		m = make(map[string]pendingAnchor)
		a.pending[delegatorAID] = m
	}
	m[said] = pendingAnchor{delegatedAID: delegatedAID, seqHex: seqHex}
}

// OnDelegatorIxn scans an accepted ixn event's anchor seals for matches
// against events tracked under that delegator, promoting each match through
// the escrow pipeline. It returns the SAIDs promoted.
func (a *Anchorer) OnDelegatorIxn(delegatorAID string, ked event.KED) ([]string, error) {
	a.mu.Lock()
	pending, ok := a.pending[delegatorAID]
	if !ok {
		a.mu.Unlock()
		return nil, nil
	}

	rawAnchors, _ := ked[event.FieldAnchors].([]any)
	var matched []string
	for _, raw := range rawAnchors {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		seal, ok := event.SealFromMap(m)
		if !ok {
			continue
		}
		exp, tracked := pending[seal.D]
		if !tracked || exp.delegatedAID != seal.I || exp.seqHex != seal.S {
			continue
		}
		matched = append(matched, seal.D)
		delete(pending, seal.D)
	}
	a.mu.Unlock()

	for _, said := range matched {
		if _, err := a.pipeline.PromoteAnchored(said); err != nil {
			return matched, err
		}
	}
	return matched, nil
}
