// Package indexer implements the append-only projection of spec §4.13:
// for each log (a KEL AID or a TEL registry ID), an ordered list of
// records describing every event accepted into it. The projection is
// regenerable from the primary event store, so the indexer carries no
// write-ahead log of its own.
package indexer

// ReferenceKind tags what an indexed event's cross-log reference points
// to (spec §4.13).
type ReferenceKind int

const (
	RefIssuerKEL ReferenceKind = iota
	RefSignerKEL
	RefParentRegistry
	RefChildRegistry
	RefCredentialRegistry
	RefEdge
)

// Reference is one tagged cross-log pointer carried by a Record.
type Reference struct {
	Kind ReferenceKind `cbor:"1,keyasint"`
	// Target is the SAID/AID/registry-ID the reference resolves to,
	// meaning depends on Kind.
	Target string `cbor:"2,keyasint"`
}
