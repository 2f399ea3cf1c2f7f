package indexer

import (
	"context"
	"fmt"

	"github.com/forestrie/go-keri/cborcodec"
	"github.com/forestrie/go-keri/kvstore"
)

// Index projects per-log Records through a kvstore.Store, deterministically
// CBOR-encoded (spec §4.16) so two projections built from the same event
// set are byte-identical.
type Index struct {
	store kvstore.Store
	codec cborcodec.Codec
}

// New builds an Index persisting through store.
func New(store kvstore.Store) (*Index, error) {
	codec, err := cborcodec.New()
	if err != nil {
		return nil, err
	}
	return &Index{store: store, codec: codec}, nil
}

// recordKey zero-pads the sequence to a fixed width so the lexicographic
// order kvstore.Store.List guarantees matches sequence order for any log
// shorter than 10^16 events.
func recordKey(logSaid string, seq int) string {
	return fmt.Sprintf("idx/%s/%016d", logSaid, seq)
}

// Append writes rec as the projection entry for logSaid at rec.Sequence.
// Appending is idempotent: writing the same (logSaid, Sequence) again with
// identical content is a no-op from the caller's perspective, but Append
// does not itself enforce immutability - the core only ever calls it once
// per accepted event, in sequence order.
func (ix *Index) Append(ctx context.Context, logSaid string, rec Record) error {
	blob, err := ix.codec.Marshal(rec)
	if err != nil {
		return err
	}
	return ix.store.Put(ctx, recordKey(logSaid, rec.Sequence), blob)
}

// At returns the record for logSaid at sequence seq.
func (ix *Index) At(ctx context.Context, logSaid string, seq int) (Record, error) {
	blob, found, err := ix.store.Get(ctx, recordKey(logSaid, seq))
	if err != nil {
		return Record{}, err
	}
	if !found {
		return Record{}, ErrRecordNotFound
	}
	var rec Record
	if err := ix.codec.Unmarshal(blob, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns every record held for logSaid, in sequence order.
func (ix *Index) List(ctx context.Context, logSaid string) ([]Record, error) {
	keys, err := ix.store.List(ctx, fmt.Sprintf("idx/%s/", logSaid))
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, ErrLogNotFound
	}
	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		blob, found, err := ix.store.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		var rec Record
		if err := ix.codec.Unmarshal(blob, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Rebuild discards and replays a log's projection from a caller-supplied
// ordered list of records - the regeneration path spec §4.13 requires so
// the indexer needs no write-ahead log of its own.
func (ix *Index) Rebuild(ctx context.Context, logSaid string, records []Record) error {
	existing, err := ix.store.List(ctx, fmt.Sprintf("idx/%s/", logSaid))
	if err != nil {
		return err
	}
	for _, k := range existing {
		if err := ix.store.Del(ctx, k); err != nil {
			return err
		}
	}
	for _, rec := range records {
		if err := ix.Append(ctx, logSaid, rec); err != nil {
			return err
		}
	}
	return nil
}
