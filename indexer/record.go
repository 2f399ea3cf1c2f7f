package indexer

import "time"

// SigRecord is the indexed-signature projection of one contribution to an
// event (spec §4.10), persisted alongside the record it signs.
type SigRecord struct {
	Idx int    `cbor:"1,keyasint"`
	Sig string `cbor:"2,keyasint"` // CESR-text signature
}

// Record is one indexed event within a log's projection (spec §4.13).
type Record struct {
	EventID    string        `cbor:"1,keyasint"`
	EventType  string        `cbor:"2,keyasint"`
	Sequence   int           `cbor:"3,keyasint"`
	Prior      string        `cbor:"4,keyasint,omitempty"`
	Timestamp  time.Time     `cbor:"5,keyasint"`
	Signatures []SigRecord   `cbor:"6,keyasint,omitempty"`
	References []Reference   `cbor:"7,keyasint,omitempty"`
}
