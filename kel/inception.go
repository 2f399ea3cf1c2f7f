package kel

import (
	"fmt"
	"strings"

	"github.com/forestrie/go-keri/canon"
	"github.com/forestrie/go-keri/codex"
	"github.com/forestrie/go-keri/diger"
	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/tholder"
)

// InceptionParams describes the caller-supplied fields for an icp/dip
// event, spec §4.7.
type InceptionParams struct {
	Keys     []string // signing verfers, CESR text, in order
	KT       any      // nil => default numeric "1"
	KTGiven  bool      // true if the caller supplied kt explicitly
	Next     []string // next-key digests ("n")
	NT       any      // nil => default numeric "1", or "0" when Next is empty
	NTGiven  bool
	Witnesses        []string
	WitnessThreshold int
	Config           []string
	Delegator        string // "" unless this is a delegated inception
}

// Inception builds an icp (or dip, when Delegator is set) event and
// derives its State, per spec §4.7 and the derivation-mode resolution in
// SPEC_FULL.md §9.
func Inception(p InceptionParams) (text []byte, ked event.KED, st State, err error) {
	if len(p.Keys) == 0 {
		return nil, nil, State{}, fmt.Errorf("%w: inception requires at least one key", ErrInvariantViolation)
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

	typ := event.Icp
	if p.Delegator != "" {
		typ = event.Dip
	}

	ked = event.KED{
		event.FieldVersion: nil,
		event.FieldType:    string(typ),
		event.FieldSaid:    nil,
		event.FieldSubject: "", // filled in below once AID is known
		event.FieldSeq:     "0",
		event.FieldKT:      kt.Serialize(),
		event.FieldK:       toAny(p.Keys),
		event.FieldNT:      nt.Serialize(),
		event.FieldN:       toAny(p.Next),
		event.FieldBT:      fmt.Sprintf("%d", p.WitnessThreshold),
		event.FieldB:       toAny(p.Witnesses),
		event.FieldConfig:  toAny(p.Config),
		event.FieldAnchors: []any{},
	}
	if p.Delegator != "" {
		ked[event.FieldDelegator] = p.Delegator
	}

	selfAddressing := p.Delegator != "" || len(p.Keys) > 1 || explicitNonDefault(kt, p.KTGiven)

	var aid string
	if !selfAddressing {
		aid = p.Keys[0]
		ked[event.FieldSubject] = aid
		text, _, ked, err = event.Serialize(ked)
		if err != nil {
			return nil, nil, State{}, err
		}
	} else {
		// AID = SAID of the event: "i" holds a same-width placeholder
		// through the one SAID computation pass (alongside "d"'s own
		// placeholder), so substituting the computed SAID into both
		// fields afterwards changes no lengths and needs no
		// re-hashing, per spec §3.3/§4.7.
		placeholder, perr := saidPlaceholderText()
		if perr != nil {
			return nil, nil, State{}, perr
		}
		ked[event.FieldSubject] = placeholder
		_, _, work, err2 := event.Serialize(ked)
		if err2 != nil {
			return nil, nil, State{}, err2
		}
		aid = work[event.FieldSaid].(string)
		work[event.FieldSubject] = aid
		final, merr := canon.MarshalMap(work)
		if merr != nil {
			return nil, nil, State{}, merr
		}
		text = final
		ked = work
	}

	st = State{
		AID:       aid,
		Seq:       0,
		K:         append([]string{}, p.Keys...),
		KT:        kt,
		N:         append([]string{}, p.Next...),
		NT:        nt,
		B:         append([]string{}, p.Witnesses...),
		BT:        p.WitnessThreshold,
		Config:    append([]string{}, p.Config...),
		LastSaid:  ked[event.FieldSaid].(string),
		Delegator: p.Delegator,
	}
	return text, ked, st, nil
}

// explicitNonDefault reports whether an explicitly-given threshold is
// anything other than the numeric default of "1" on a single key - the
// resolution of SPEC_FULL.md's pinned open question.
func explicitNonDefault(kt tholder.Tholder, given bool) bool {
	if !given {
		return false
	}
	if kt.Kind() == tholder.KindNumeric && kt.Serialize() == "1" {
		return false
	}
	return true
}

func parseThreshold(raw any, given bool, deflt int) (tholder.Tholder, error) {
	if !given || raw == nil {
		return tholder.Parse(deflt)
	}
	return tholder.Parse(raw)
}

// saidPlaceholderText returns a "#"-filled placeholder the width of the
// default digest code's CESR text, for self-addressing AID derivation.
func saidPlaceholderText() (string, error) {
	s, err := codex.Lookup(diger.DefaultCode)
	if err != nil {
		return "", err
	}
	return strings.Repeat("#", s.FS), nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
