// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/notedeck/notedeck/pkg/constant"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyBlobStore struct {
	downloadErr error
	calls       int
}

func (f *flakyBlobStore) Upload(_ context.Context, _ string, _ string, _ io.Reader) (string, error) {
	return "blob-1", nil
}

func (f *flakyBlobStore) Download(_ context.Context, _ string) (*Blob, error) {
	f.calls++

	if f.downloadErr != nil {
		return nil, f.downloadErr
	}

	return &Blob{
		Body:        io.NopCloser(strings.NewReader("content")),
		Length:      7,
		ContentType: "application/pdf",
	}, nil
}

func (f *flakyBlobStore) Delete(_ context.Context, _ string) error {
	return nil
}

func TestBreakerBlobStore_PassesThroughOnHealthyBackend(t *testing.T) {
	t.Parallel()

	inner := &flakyBlobStore{}
	store := NewBreakerBlobStore(inner, &log.NoneLogger{})

	blob, err := store.Download(context.Background(), "blob-1")

	require.NoError(t, err)
	require.NotNil(t, blob)
	assert.Equal(t, int64(7), blob.Length)
}

func TestBreakerBlobStore_OpensAfterConsecutiveBackendFailures(t *testing.T) {
	t.Parallel()

	inner := &flakyBlobStore{downloadErr: errors.New("gridfs: connection reset")}
	store := NewBreakerBlobStore(inner, &log.NoneLogger{})

	for i := uint32(0); i < constant.CircuitBreakerThreshold; i++ {
		_, err := store.Download(context.Background(), "blob-1")
		require.Error(t, err)
	}

	callsBeforeOpen := inner.calls

	_, err := store.Download(context.Background(), "blob-1")

	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, callsBeforeOpen, inner.calls, "open breaker must not reach the backend")
}

func TestBreakerBlobStore_NotFoundDoesNotTrip(t *testing.T) {
	t.Parallel()

	inner := &flakyBlobStore{downloadErr: ErrBlobNotFound}
	store := NewBreakerBlobStore(inner, &log.NoneLogger{})

	for i := uint32(0); i < constant.CircuitBreakerThreshold*2; i++ {
		_, err := store.Download(context.Background(), "blob-1")
		require.ErrorIs(t, err, ErrBlobNotFound)
	}

	assert.Equal(t, int(constant.CircuitBreakerThreshold*2), inner.calls, "misses must keep reaching the backend")
}

type flakyObjectStore struct {
	uploadErr error
}

func (f *flakyObjectStore) Upload(_ context.Context, key string, _ string, _ io.Reader) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}

	return "https://cdn.example.com/" + key, key, nil
}

func (f *flakyObjectStore) Delete(_ context.Context, _ string) error {
	return nil
}

func (f *flakyObjectStore) Exists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func TestBreakerObjectStore_UploadRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewBreakerObjectStore(&flakyObjectStore{}, &log.NoneLogger{})

	url, objectID, err := store.Upload(context.Background(), "notes/n-1/doc.pdf", "application/pdf", strings.NewReader("content"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/notes/n-1/doc.pdf", url)
	assert.Equal(t, "notes/n-1/doc.pdf", objectID)
}

func TestBreakerObjectStore_OpensAfterConsecutiveUploadFailures(t *testing.T) {
	t.Parallel()

	store := NewBreakerObjectStore(&flakyObjectStore{uploadErr: errors.New("s3: dial timeout")}, &log.NoneLogger{})

	for i := uint32(0); i < constant.CircuitBreakerThreshold; i++ {
		_, _, err := store.Upload(context.Background(), "notes/n-1/doc.pdf", "application/pdf", strings.NewReader("content"))
		require.Error(t, err)
	}

	_, _, err := store.Upload(context.Background(), "notes/n-1/doc.pdf", "application/pdf", strings.NewReader("content"))

	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}
