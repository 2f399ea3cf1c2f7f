package kel

import (
	"fmt"
	"strconv"

	"github.com/forestrie/go-keri/canon"
	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/saider"
	"github.com/forestrie/go-keri/tholder"
)

// Accept ingests a parsed, already-framed event into a KEL, verifying its
// SAID, chaining, and (when sigs are given) threshold satisfaction, per
// spec §4.7's failure semantics. An icp/dip is only accepted into an empty
// KEL; rot/drt/ixn are only accepted onto an existing one.
//
// A sequence number greater than prior.Seq+1 returns ErrOutOfOrderSequence
// without mutating k - callers hold the event in escrow until the gap
// closes, per spec §4.7.
func Accept(k *KEL, ked event.KED, sigs []event.IndexedSig) error {
	typ, _ := ked[event.FieldType].(string)
	switch event.Type(typ) {
	case event.Icp, event.Dip:
		return acceptInception(k, ked, sigs)
	case event.Rot, event.Drt:
		return acceptSuccessor(k, ked, sigs, true)
	case event.Ixn:
		return acceptSuccessor(k, ked, sigs, false)
	default:
		return fmt.Errorf("%w: unrecognized event type %q", ErrTypeForbidden, typ)
	}
}

// parseFieldThreshold parses a kt/nt value as it appears in a KED, which
// after a decode/encode round trip holds a JSON-decoded []any rather than
// the []string tholder.Parse accepts directly - both are handled.
func parseFieldThreshold(raw any) (tholder.Tholder, error) {
	return tholder.Parse(raw)
}

// stringsFromAny converts a k/n/b array field, whether it is a freshly
// built []any or a []string carried over from a local construction path.
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
				return nil, fmt.Errorf("%w: non-string array element", ErrInvariantViolation)
			}
			out[i] = s
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: expected array field, got %T", ErrInvariantViolation, raw)
	}
}

func acceptInception(k *KEL, ked event.KED, sigs []event.IndexedSig) error {
	if len(k.Events) != 0 {
		return fmt.Errorf("%w: inception event for a non-empty KEL", ErrDuplicateEvent)
	}
	said, _ := ked[event.FieldSaid].(string)
	saidTarget := ked
	if subj, _ := ked[event.FieldSubject].(string); subj != "" && subj == said {
		// A self-addressing AID was digested with "i" holding the same
		// placeholder as "d", so the SAID is checked against that form.
		placeholder, perr := saidPlaceholderText()
		if perr != nil {
			return perr
		}
		saidTarget = make(event.KED, len(ked))
		for f, v := range ked {
			saidTarget[f] = v
		}
		saidTarget[event.FieldSubject] = placeholder
	}
	ok, err := saider.VerifySaid(saidTarget, event.FieldSaid)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvariantViolation
	}

	aid, _ := ked[event.FieldSubject].(string)
	kt, err := parseFieldThreshold(ked[event.FieldKT])
	if err != nil {
		return err
	}
	nt, err := parseFieldThreshold(ked[event.FieldNT])
	if err != nil {
		return err
	}
	keys, err := stringsFromAny(ked[event.FieldK])
	if err != nil {
		return err
	}
	next, err := stringsFromAny(ked[event.FieldN])
	if err != nil {
		return err
	}
	witnesses, err := stringsFromAny(ked[event.FieldB])
	if err != nil {
		return err
	}
	bt, _ := strconv.Atoi(fmt.Sprint(ked[event.FieldBT]))
	delegator, _ := ked[event.FieldDelegator].(string)
	config, err := stringsFromAny(ked[event.FieldConfig])
	if err != nil {
		return err
	}

	// VerifySaid only certifies that "d" digests the event as given,
	// including whatever "i" already holds - it never certifies "i" was
	// derived correctly. Recompute the expected AID from k/kt the same
	// way Inception does and reject a mismatch, per spec §3.3/§4.7.
	selfAddressing := delegator != "" || len(keys) > 1 || explicitNonDefault(kt, true)
	var expectedAID string
	if selfAddressing {
		expectedAID = said
	} else {
		if len(keys) == 0 {
			return fmt.Errorf("%w: inception with no keys", ErrInvariantViolation)
		}
		expectedAID = keys[0]
	}
	if aid != expectedAID {
		return fmt.Errorf("%w: aid %q does not match derivation from k/kt", ErrInvariantViolation, aid)
	}

	if sigs != nil {
		verfers, verr := VerfersFromQB64(keys)
		if verr != nil {
			return verr
		}
		framed, err := canon.MarshalMap(ked)
		if err != nil {
			return err
		}
		if err := verifyThreshold(kt, verfers, framed, sigs); err != nil {
			return err
		}
	}

	k.State = State{
		AID:       aid,
		Seq:       0,
		K:         keys,
		KT:        kt,
		N:         next,
		NT:        nt,
		B:         witnesses,
		BT:        bt,
		Config:    config,
		LastSaid:  said,
		Delegator: delegator,
	}
	k.Events = append(k.Events, ked)
	return nil
}

func acceptSuccessor(k *KEL, ked event.KED, sigs []event.IndexedSig, keyRotation bool) error {
	if len(k.Events) == 0 {
		return fmt.Errorf("%w: successor event with no prior inception", ErrOutOfOrderSequence)
	}
	prior := k.State

	seqHex, _ := ked[event.FieldSeq].(string)
	seq, err := strconv.ParseInt(seqHex, 16, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed sequence %q", ErrInvariantViolation, seqHex)
	}
	switch {
	case int(seq) < prior.Seq+1:
		return fmt.Errorf("%w: sequence %d already superseded", ErrDuplicateEvent, seq)
	case int(seq) > prior.Seq+1:
		return fmt.Errorf("%w: sequence %d, expected %d", ErrOutOfOrderSequence, seq, prior.Seq+1)
	}

	priorSaid, _ := ked[event.FieldPrior].(string)
	if priorSaid != prior.LastSaid {
		return ErrPriorMismatch
	}

	ok, err := saider.VerifySaid(ked, event.FieldSaid)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvariantViolation
	}

	if sigs != nil {
		verfers, verr := VerfersFromQB64(prior.K)
		if verr != nil {
			return verr
		}
		framed, err := canon.MarshalMap(ked)
		if err != nil {
			return err
		}
		if err := verifyThreshold(prior.KT, verfers, framed, sigs); err != nil {
			return err
		}
	}

	next := prior
	next.Seq = int(seq)
	next.LastSaid, _ = ked[event.FieldSaid].(string)

	if keyRotation {
		keys, err := stringsFromAny(ked[event.FieldK])
		if err != nil {
			return err
		}
		if err := checkNextCommitment(prior.N, keys); err != nil {
			return err
		}
		nextDigests, err := stringsFromAny(ked[event.FieldN])
		if err != nil {
			return err
		}
		kt, err := parseFieldThreshold(ked[event.FieldKT])
		if err != nil {
			return err
		}
		nt, err := parseFieldThreshold(ked[event.FieldNT])
		if err != nil {
			return err
		}
		witnesses, err := stringsFromAny(ked[event.FieldB])
		if err != nil {
			return err
		}
		bt, _ := strconv.Atoi(fmt.Sprint(ked[event.FieldBT]))

		next.K = keys
		next.KT = kt
		next.N = nextDigests
		next.NT = nt
		next.B = witnesses
		next.BT = bt
	}

	if prior.Delegator != "" {
		if _, ok := ked[event.FieldAnchors]; !ok {
			return ErrDelegatorMissingAnchor
		}
	}

	k.State = next
	k.Events = append(k.Events, ked)
	return nil
}
