// Package kel implements the controller key-state machine: inception,
// rotation, interaction, and delegation, per spec §3.3 and §4.7.
package kel

import (
	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/tholder"
)

// State is the key state held per AID (spec §4.7).
type State struct {
	AID       string
	Seq       int
	K         []string // current signing verfers, CESR text
	KT        tholder.Tholder
	N         []string // next-key digests
	NT        tholder.Tholder
	B         []string // witnesses
	BT        int      // witness threshold
	Config    []string
	LastSaid  string
	Delegator string // empty if not delegated
}

// KEL is the append-only sequence of events for one AID, plus its derived
// current State.
type KEL struct {
	Events []event.KED
	State  State
}

// Event returns the nth accepted event, or ok=false if out of range.
func (k *KEL) Event(n int) (event.KED, bool) {
	if n < 0 || n >= len(k.Events) {
		return nil, false
	}
	return k.Events[n], true
}

// Head returns the most recently accepted event.
func (k *KEL) Head() (event.KED, bool) {
	if len(k.Events) == 0 {
		return nil, false
	}
	return k.Events[len(k.Events)-1], true
}
