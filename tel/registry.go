package tel

import (
	"fmt"

	"github.com/forestrie/go-keri/event"
)

// RegistryInceptionParams configures a vcp event. Parent is "" for a
// top-level registry; a non-empty Parent must equal the registry ID whose
// ixn anchor seal will reference this vcp's SAID (spec §4.8 nested
// registries).
type RegistryInceptionParams struct {
	Issuer  string
	Backers []string
	BackerT int
	Parent  string
}

// RegistryInception builds a vcp event. The registry ID is the event's own
// SAID: both "i" and "d" are filled from the same placeholder during
// Serialize's single digest pass, exactly as kel.Inception derives a
// self-addressing AID.
func RegistryInception(p RegistryInceptionParams) (text []byte, ked event.KED, st RegistryState, err error) {
	if p.Issuer == "" {
		return nil, nil, RegistryState{}, fmt.Errorf("%w: registry inception requires an issuing AID", ErrInvariantViolation)
	}

	backers := toAny(p.Backers)
	ked = event.KED{
		event.FieldVersion: nil,
		event.FieldType:    string(event.Vcp),
		event.FieldSaid:    nil,
		event.FieldSubject: "",
		event.FieldIssuer:  p.Issuer,
		event.FieldSeq:     "0",
		event.FieldBT:      fmt.Sprintf("%d", p.BackerT),
		event.FieldB:       backers,
		event.FieldParent:  p.Parent,
	}

	placeholder, err := saidWidth()
	if err != nil {
		return nil, nil, RegistryState{}, err
	}
	ked[event.FieldSubject] = placeholder
	text, _, ked, err = event.Serialize(ked)
	if err != nil {
		return nil, nil, RegistryState{}, err
	}
	registryID, _ := ked[event.FieldSaid].(string)
	ked[event.FieldSubject] = registryID
	text, err = reframe(ked)
	if err != nil {
		return nil, nil, RegistryState{}, err
	}

	st = RegistryState{
		RegistryID: registryID,
		Issuer:     p.Issuer,
		Backers:    append([]string{}, p.Backers...),
		BackerT:    p.BackerT,
		Parent:     p.Parent,
		Seq:        0,
		LastSaid:   registryID,
	}
	return text, ked, st, nil
}

// RegistryInteractionParams configures a registry-level ixn event, used to
// anchor a child registry's vcp or any other registry-scoped seal.
type RegistryInteractionParams struct {
	Anchors []event.Seal
}

// RegistryInteraction builds an ixn event extending a registry's own TEL,
// analogous to kel.Interaction but chained against RegistryState instead of
// an AID's key state.
func RegistryInteraction(prior RegistryState, p RegistryInteractionParams) (text []byte, ked event.KED, st RegistryState, err error) {
	anchors := make([]any, len(p.Anchors))
	for i, a := range p.Anchors {
		anchors[i] = a.ToMap()
	}
	ked = event.KED{
		event.FieldVersion: nil,
		event.FieldType:    string(event.Ixn),
		event.FieldSaid:    nil,
		event.FieldSubject: prior.RegistryID,
		event.FieldSeq:     fmt.Sprintf("%x", prior.Seq+1),
		event.FieldPrior:   prior.LastSaid,
		event.FieldAnchors: anchors,
	}
	text, _, ked, err = event.Serialize(ked)
	if err != nil {
		return nil, nil, RegistryState{}, err
	}

	st = prior
	st.Seq = prior.Seq + 1
	st.LastSaid, _ = ked[event.FieldSaid].(string)
	return text, ked, st, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
