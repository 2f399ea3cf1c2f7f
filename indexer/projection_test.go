package indexer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-keri/kvstore/memstore"
)

func TestAppendAndList(t *testing.T) {
	ix, err := New(memstore.New())
	require.NoError(t, err)
	ctx := context.Background()
	logSaid := "EaidOrRegistrySAID"

	rec0 := Record{
		EventID:   "Eicp",
		EventType: "icp",
		Sequence:  0,
		Timestamp: time.Unix(1000, 0).UTC(),
	}
	rec1 := Record{
		EventID:   "Eixn",
		EventType: "ixn",
		Sequence:  1,
		Prior:     "Eicp",
		Timestamp: time.Unix(1001, 0).UTC(),
		References: []Reference{
			{Kind: RefIssuerKEL, Target: "EissuerAID"},
		},
	}

	require.NoError(t, ix.Append(ctx, logSaid, rec0))
	require.NoError(t, ix.Append(ctx, logSaid, rec1))

	got, err := ix.At(ctx, logSaid, 1)
	require.NoError(t, err)
	require.Equal(t, "Eixn", got.EventID)
	require.Len(t, got.References, 1)
	require.Equal(t, RefIssuerKEL, got.References[0].Kind)

	all, err := ix.List(ctx, logSaid)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestListUnknownLog(t *testing.T) {
	ix, err := New(memstore.New())
	require.NoError(t, err)
	_, err = ix.List(context.Background(), "Enever-seen")
	require.ErrorIs(t, err, ErrLogNotFound)
}

func TestRebuildReplacesProjection(t *testing.T) {
	ix, err := New(memstore.New())
	require.NoError(t, err)
	ctx := context.Background()
	logSaid := "Elog"

	require.NoError(t, ix.Append(ctx, logSaid, Record{EventID: "Estale", Sequence: 0, Timestamp: time.Unix(1, 0)}))

	fresh := []Record{
		{EventID: "Efresh0", Sequence: 0, Timestamp: time.Unix(2, 0)},
		{EventID: "Efresh1", Sequence: 1, Timestamp: time.Unix(3, 0)},
	}
	require.NoError(t, ix.Rebuild(ctx, logSaid, fresh))

	all, err := ix.List(ctx, logSaid)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotEqual(t, "Estale", all[0].EventID)
}
