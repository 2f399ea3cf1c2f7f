package keri

import (
	"context"

	"github.com/google/uuid"

	"github.com/forestrie/go-keri/event"
)

// Kind selects which engine an IngestRequest is dispatched to.
type Kind int

const (
	KindKELEvent Kind = iota
	KindTELEvent
	KindACDC
)

// IngestRequest is one unit of work submitted to Worker's queue (spec §5).
// LogID is the AID for a KindKELEvent, the registry ID for a
// KindTELEvent, and unused for KindACDC (ACDCs are addressed by their own
// SAID, computed from KED).
type IngestRequest struct {
	Ctx      context.Context
	Kind     Kind
	LogID    string
	KED      event.KED
	Sigs     []event.IndexedSig // one signer's contribution when Partial, a caller-verified complete batch otherwise
	Anchored bool               // TEL vcp only: has the core already verified the issuer-KEL anchor?

	// Partial marks a KindKELEvent rot/drt/ixn submission as one signer's
	// contribution rather than a complete, ready-to-persist event: the
	// worker accumulates it in the escrow pipeline (spec §4.11) instead of
	// calling kel.Accept directly, and only persists once the pipeline
	// reports the entry StageCompleted. Ignored for icp/dip (inception
	// has no prior key state to check a threshold against) and for
	// KindTELEvent/KindACDC.
	Partial bool

	// Result receives exactly one value once processing completes (or is
	// cancelled before its persist step). Callers that don't need to
	// observe completion may leave it nil.
	Result chan<- error

	// requestID tags log lines for one ingestion; assigned in normalize,
	// the way the teacher's storage layer tags each log's blobs with a
	// UUID path component (massifs/storage/prefixeduuid.go) rather than
	// leaving concurrent ingestions indistinguishable in a shared log.
	requestID string
}

// normalize assigns requestID if the caller hasn't already (re-)submitted
// this request with one, so Submit is idempotent to call more than once
// on a copy of the same request.
func (r IngestRequest) normalize() IngestRequest {
	if r.requestID == "" {
		r.requestID = uuid.NewString()
	}
	return r
}

func (r IngestRequest) reply(err error) {
	if r.Result == nil {
		return
	}
	r.Result <- err
}
