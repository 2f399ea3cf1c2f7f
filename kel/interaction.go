package kel

import (
	"fmt"

	"github.com/forestrie/go-keri/event"
)

// InteractionParams describes the caller-supplied fields for an ixn event,
// spec §4.7.
type InteractionParams struct {
	Anchors []event.Seal
}

// Interaction builds an ixn event against the prior State: same chaining
// rules as rotation (s = prior.Seq+1, p = prior SAID), no key change, and
// it carries anchor seals binding external events into the KEL. Threshold
// satisfaction is enforced separately, by Accept, once the framed text has
// been signed.
func Interaction(prior State, p InteractionParams) (text []byte, ked event.KED, st State, err error) {
	anchors := make([]any, len(p.Anchors))
	for i, a := range p.Anchors {
		anchors[i] = a.ToMap()
	}

	ked = event.KED{
		event.FieldVersion: nil,
		event.FieldType:    string(event.Ixn),
		event.FieldSaid:    nil,
		event.FieldSubject: prior.AID,
		event.FieldSeq:     fmt.Sprintf("%x", prior.Seq+1),
		event.FieldPrior:   prior.LastSaid,
		event.FieldAnchors: anchors,
	}

	text, _, ked, err = event.Serialize(ked)
	if err != nil {
		return nil, nil, State{}, err
	}

	st = State{
		AID:       prior.AID,
		Seq:       prior.Seq + 1,
		K:         append([]string{}, prior.K...),
		KT:        prior.KT,
		N:         append([]string{}, prior.N...),
		NT:        prior.NT,
		B:         append([]string{}, prior.B...),
		BT:        prior.BT,
		Config:    append([]string{}, prior.Config...),
		LastSaid:  ked[event.FieldSaid].(string),
		Delegator: prior.Delegator,
	}
	return text, ked, st, nil
}
