package kel

import (
	"fmt"

	"github.com/forestrie/go-keri/event"
)

// RotationParams describes the caller-supplied fields for a rot/drt event,
// spec §4.7.
type RotationParams struct {
	Keys    []string // new signing verfers, CESR text, in order
	KT      any      // nil => default numeric "1"
	KTGiven bool
	Next    []string // new next-key digests
	NT      any
	NTGiven bool

	Witnesses        []string // full replacement witness list, or nil to use prune/graft
	WitnessPrune     []string
	WitnessGraft     []string
	WitnessThreshold int
	Anchors          []event.Seal
}

// Rotation validates and builds a rot (or drt, when prior.Delegator is set)
// event against the prior State, per spec §4.7: each new key must hash to
// the prior event's next-key commitment and the event must chain from the
// prior SAID with s = prior.Seq+1. Threshold satisfaction against the
// prior key state is enforced separately, by Accept, once the framed text
// has been signed.
func Rotation(prior State, p RotationParams) (text []byte, ked event.KED, st State, err error) {
	if prior.NT.IsNonTransferable() {
		return nil, nil, State{}, fmt.Errorf("%w: prior key state is non-transferable", ErrTypeForbidden)
	}
	if len(p.Keys) == 0 {
		return nil, nil, State{}, fmt.Errorf("%w: rotation requires at least one key", ErrInvariantViolation)
	}
	if err := checkNextCommitment(prior.N, p.Keys); err != nil {
		return nil, nil, State{}, err
	}

	kt, err := parseThreshold(p.KT, p.KTGiven, 1)
	if err != nil {
		return nil, nil, State{}, err
	}
	ntDefault := 1
	if len(p.Next) == 0 {
		ntDefault = 0
	}
	nt, err := parseThreshold(p.NT, p.NTGiven, ntDefault)
	if err != nil {
		return nil, nil, State{}, err
	}

	typ := event.Rot
	if prior.Delegator != "" {
		typ = event.Drt
	}

	anchors := make([]any, len(p.Anchors))
	for i, a := range p.Anchors {
		anchors[i] = a.ToMap()
	}

	witnesses := p.Witnesses
	if witnesses == nil {
		witnesses = applyWitnessDelta(prior.B, p.WitnessPrune, p.WitnessGraft)
	}

	ked = event.KED{
		event.FieldVersion: nil,
		event.FieldType:    string(typ),
		event.FieldSaid:    nil,
		event.FieldSubject: prior.AID,
		event.FieldSeq:     fmt.Sprintf("%x", prior.Seq+1),
		event.FieldPrior:   prior.LastSaid,
		event.FieldKT:      kt.Serialize(),
		event.FieldK:       toAny(p.Keys),
		event.FieldNT:      nt.Serialize(),
		event.FieldN:       toAny(p.Next),
		event.FieldBT:      fmt.Sprintf("%d", p.WitnessThreshold),
		event.FieldB:       toAny(witnesses),
		event.FieldAnchors: anchors,
	}

	text, _, ked, err = event.Serialize(ked)
	if err != nil {
		return nil, nil, State{}, err
	}

	st = State{
		AID:       prior.AID,
		Seq:       prior.Seq + 1,
		K:         append([]string{}, p.Keys...),
		KT:        kt,
		N:         append([]string{}, p.Next...),
		NT:        nt,
		B:         append([]string{}, witnesses...),
		BT:        p.WitnessThreshold,
		Config:    prior.Config,
		LastSaid:  ked[event.FieldSaid].(string),
		Delegator: prior.Delegator,
	}
	return text, ked, st, nil
}

// applyWitnessDelta applies prune-then-graft to the prior witness list, spec
// §4.7's incremental witness rotation form.
func applyWitnessDelta(prior []string, prune []string, graft []string) []string {
	cut := make(map[string]bool, len(prune))
	for _, w := range prune {
		cut[w] = true
	}
	out := make([]string, 0, len(prior)+len(graft))
	for _, w := range prior {
		if !cut[w] {
			out = append(out, w)
		}
	}
	out = append(out, graft...)
	return out
}
