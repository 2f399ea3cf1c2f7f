package tel

import (
	"fmt"
	"strconv"

	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/saider"
)

// Accept ingests a parsed, already-framed TEL event. anchored is the
// result of the core's separate verification that an accepted ixn in the
// issuing AID's KEL carries a seal matching this event's SAID (spec §4.8:
// "the core verifies the anchor on ingestion of the companion ixn") - it is
// only consulted for vcp, the one TEL event type that requires a KEL-side
// anchor to exist at all.
func Accept(t *TEL, ked event.KED, anchored bool) error {
	typ, _ := ked[event.FieldType].(string)
	switch event.Type(typ) {
	case event.Vcp:
		return acceptInception(t, ked, anchored)
	case event.Ixn:
		return acceptRegistryInteraction(t, ked)
	case event.Iss:
		return acceptIssuance(t, ked)
	case event.Rev:
		return acceptRevocation(t, ked)
	default:
		return fmt.Errorf("%w: unrecognized TEL event type %q", ErrTypeForbidden, typ)
	}
}

func acceptInception(t *TEL, ked event.KED, anchored bool) error {
	if len(t.Events) != 0 {
		return fmt.Errorf("%w: vcp event for a non-empty registry", ErrInvariantViolation)
	}
	if !anchored {
		return ErrMissingAnchor
	}
	said, _ := ked[event.FieldSaid].(string)
	saidTarget := ked
	if subj, _ := ked[event.FieldSubject].(string); subj != "" && subj == said {
		// The registry ID in "i" was digested as the same placeholder as
		// "d", so the SAID is checked against that form.
		placeholder, perr := saidWidth()
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

	registryID, _ := ked[event.FieldSaid].(string)
	issuer, _ := ked[event.FieldIssuer].(string)
	backers, err := stringsFromAny(ked[event.FieldB])
	if err != nil {
		return err
	}
	bt, _ := strconv.Atoi(fmt.Sprint(ked[event.FieldBT]))
	parent, _ := ked[event.FieldParent].(string)

	t.State = RegistryState{
		RegistryID: registryID,
		Issuer:     issuer,
		Backers:    backers,
		BackerT:    bt,
		Parent:     parent,
		Seq:        0,
		LastSaid:   registryID,
	}
	t.Events = append(t.Events, ked)
	return nil
}

func acceptRegistryInteraction(t *TEL, ked event.KED) error {
	if len(t.Events) == 0 {
		return fmt.Errorf("%w: registry ixn with no prior vcp", ErrOutOfOrderSequence)
	}
	prior := t.State
	seq, err := checkSequence(ked, prior.Seq, prior.LastSaid)
	if err != nil {
		return err
	}
	ok, err := saider.VerifySaid(ked, event.FieldSaid)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvariantViolation
	}

	t.State.Seq = seq
	t.State.LastSaid, _ = ked[event.FieldSaid].(string)
	t.Events = append(t.Events, ked)
	return nil
}

func acceptIssuance(t *TEL, ked event.KED) error {
	ok, err := saider.VerifySaid(ked, event.FieldSaid)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvariantViolation
	}
	credSaid, _ := ked[event.FieldSubject].(string)
	if _, tracked := t.Credentials[credSaid]; tracked {
		return fmt.Errorf("%w: credential %s", ErrDoubleIssuance, credSaid)
	}
	seqHex, _ := ked[event.FieldSeq].(string)
	if seqHex != "0" {
		return fmt.Errorf("%w: issuance sequence %q, want 0", ErrInvariantViolation, seqHex)
	}

	said, _ := ked[event.FieldSaid].(string)
	t.Credentials[credSaid] = &CredentialState{
		Said:     credSaid,
		Status:   StatusIssued,
		Seq:      0,
		LastSaid: said,
	}
	t.Events = append(t.Events, ked)
	return nil
}

func acceptRevocation(t *TEL, ked event.KED) error {
	ok, err := saider.VerifySaid(ked, event.FieldSaid)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvariantViolation
	}
	credSaid, _ := ked[event.FieldSubject].(string)
	c, tracked := t.Credentials[credSaid]
	if !tracked {
		return fmt.Errorf("%w: %s", ErrRevokeBeforeIssue, credSaid)
	}
	if c.Status == StatusRevoked {
		return fmt.Errorf("%w: %s", ErrAlreadyRevoked, credSaid)
	}

	seq, err := checkSequence(ked, c.Seq, c.LastSaid)
	if err != nil {
		return err
	}

	c.Status = StatusRevoked
	c.Seq = seq
	c.LastSaid, _ = ked[event.FieldSaid].(string)
	t.Events = append(t.Events, ked)
	return nil
}

// checkSequence verifies ked's "s"/"p" fields chain onto (priorSeq,
// priorSaid), returning the parsed sequence number.
func checkSequence(ked event.KED, priorSeq int, priorSaid string) (int, error) {
	seqHex, _ := ked[event.FieldSeq].(string)
	seq, err := strconv.ParseInt(seqHex, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed sequence %q", ErrInvariantViolation, seqHex)
	}
	switch {
	case int(seq) < priorSeq+1:
		return 0, fmt.Errorf("%w: sequence %d already superseded", ErrInvariantViolation, seq)
	case int(seq) > priorSeq+1:
		return 0, fmt.Errorf("%w: sequence %d, expected %d", ErrOutOfOrderSequence, seq, priorSeq+1)
	}
	priorField, _ := ked[event.FieldPrior].(string)
	if priorField != priorSaid {
		return 0, ErrPriorMismatch
	}
	return int(seq), nil
}

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
