// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package storage defines the two mutually-exclusive document backends a note
// can live in: a streamable blob store keyed by opaque identifier, and a
// remote object store that hands back a durable URL at upload time.
package storage

//go:generate mockgen --destination=ports.mock.go --package=storage . BlobStore,RemoteObjectStore

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrBlobNotFound indicates the blob identifier has no stored object behind it.
	ErrBlobNotFound = errors.New("blob not found")
	// ErrInvalidBlobID indicates the identifier is not well-formed for the backing store.
	ErrInvalidBlobID = errors.New("invalid blob identifier")
	// ErrKeyRequired indicates object key is missing.
	ErrKeyRequired = errors.New("object key is required")
	// ErrBucketRequired indicates bucket name is missing.
	ErrBucketRequired = errors.New("bucket name is required")
)

// Blob is an open read handle on a stored document plus the metadata the
// store declared at upload time. The caller must close Body.
type Blob struct {
	Body        io.ReadCloser
	Length      int64
	ContentType string
	FileName    string
}

// BlobStore is a content-addressed binary store. Objects are written by
// stream and read back by the opaque identifier returned from Upload.
type BlobStore interface {
	// Upload stores the content of source and returns the opaque identifier
	// addressing it.
	Upload(ctx context.Context, filename string, contentType string, source io.Reader) (string, error)

	// Download opens a read handle on the object addressed by id.
	// Returns ErrBlobNotFound when no stored object matches the identifier
	// and ErrInvalidBlobID when id is not well-formed for this store.
	Download(ctx context.Context, id string) (*Blob, error)

	// Delete removes the object addressed by id.
	Delete(ctx context.Context, id string) error
}

// RemoteObjectStore is an external object store. Upload returns both a
// durable fetchable URL and the opaque object identifier, so callers can
// later delete the object without re-deriving the key.
type RemoteObjectStore interface {
	// Upload stores the content of source under key and returns
	// (durable URL, object identifier).
	Upload(ctx context.Context, key string, contentType string, source io.Reader) (string, string, error)

	// Delete removes the object addressed by objectID.
	Delete(ctx context.Context, objectID string) error

	// Exists checks if an object exists at the given objectID.
	Exists(ctx context.Context, objectID string) (bool, error)
}
