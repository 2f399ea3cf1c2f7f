// Package azkv is a kvstore.Store adapter over Azure Blob Storage,
// grounded directly on the teacher's massifs/storage/objectstore.go
// path-provider contract and massifs/blobnotfounderr.go error-translation
// pattern, adapted from massif/checkpoint object types to KERI's §6.3 key
// layout. Every kvstore key maps to one blob name in a single container.
package azkv

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/forestrie/go-keri/kvstore"
)

// Store adapts an Azure Blob container to kvstore.Store: each key becomes
// the blob name, unmodified, within Container.
type Store struct {
	client    *azblob.Client
	container string
}

// New wraps an already-constructed azblob.Client. Construct the client with
// azblob.NewClientFromConnectionString (or one of the credential-based
// constructors) and pass it in here - this package owns none of that
// configuration, matching the teacher's separation between credential
// acquisition and the storage contract itself.
func New(client *azblob.Client, container string) *Store {
	return &Store{client: client, container: container}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if err != nil {
		if isBlobNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("azkv: get %q: %w", key, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("azkv: get %q: %w", key, err)
	}
	return data, true, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte, opts ...kvstore.PutOption) error {
	p := kvstore.ApplyPutOptions(opts...)

	var uploadOpts *azblob.UploadBufferOptions
	if p.IfAbsent {
		// Atomic put-if-absent: condition the write on If-None-Match: *,
		// the same conditional-write technique the teacher's
		// MassifCommitter.CommitContext uses to guard first-write blob
		// creation (massifs/massifcommitter.go's WithEtagNoneMatch("*")).
		// A Get-then-Upload instead leaves a window where two concurrent
		// ingestions of the same event key both observe "absent" and both
		// write.
		uploadOpts = &azblob.UploadBufferOptions{
			AccessConditions: &azblob.AccessConditions{
				ModifiedAccessConditions: &azblob.ModifiedAccessConditions{
					IfNoneMatch: to.Ptr(azcore.ETagAny),
				},
			},
		}
	}

	_, err := s.client.UploadBuffer(ctx, s.container, key, value, uploadOpts)
	if err != nil {
		if p.IfAbsent && isPreconditionFailed(err) {
			return kvstore.ErrAlreadyExists
		}
		return fmt.Errorf("azkv: put %q: %w", key, err)
	}
	return nil
}

// isPreconditionFailed reports whether err is Azure's rejection of a
// conditional UploadBuffer whose If-None-Match condition did not hold,
// i.e. a blob already exists at that key.
func isPreconditionFailed(err error) bool {
	var serr *azblob.StorageError
	if !errors.As(err, &serr) {
		return false
	}
	return serr.ErrorCode == "BlobAlreadyExists"
}

func (s *Store) Del(ctx context.Context, key string) error {
	_, err := s.client.DeleteBlob(ctx, s.container, key, nil)
	if err != nil && !isBlobNotFound(err) {
		return fmt.Errorf("azkv: delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	out := make([]string, 0)
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("azkv: list %q: %w", prefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				out = append(out, *item.Name)
			}
		}
	}
	return out, nil
}

// isBlobNotFound mirrors the teacher's WrapBlobNotFound/IsBlobNotFound
// translation: Azure's SDK reports a missing blob as a StorageError whose
// ErrorCode is "BlobNotFound".
func isBlobNotFound(err error) bool {
	var serr *azblob.StorageError
	if !errors.As(err, &serr) {
		return false
	}
	return serr.ErrorCode == "BlobNotFound"
}

var _ kvstore.Store = (*Store)(nil)
