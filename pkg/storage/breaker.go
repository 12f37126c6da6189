// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/notedeck/notedeck/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/sony/gobreaker"
)

// newStorageBreaker builds a circuit breaker for a storage backend. Lookup
// misses and malformed identifiers are caller mistakes, not backend health
// signals, so they never count as failures.
func newStorageBreaker(name string, logger log.Logger) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        fmt.Sprintf("storage-%s", name),
		MaxRequests: constant.CircuitBreakerMaxRequests,
		Interval:    constant.CircuitBreakerInterval,
		Timeout:     constant.CircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures >= constant.CircuitBreakerThreshold ||
				(counts.Requests >= 10 && failureRatio >= 0.5)
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrBlobNotFound) ||
				errors.Is(err, ErrInvalidBlobID) ||
				errors.Is(err, ErrKeyRequired)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warnf("Circuit Breaker [%s] state changed: %s -> %s", name, from.String(), to.String())

			if to == gobreaker.StateOpen {
				logger.Errorf("Circuit Breaker [%s] OPENED - storage backend is unhealthy, requests will fast-fail", name)
			}
		},
	}

	return gobreaker.NewCircuitBreaker(settings)
}

// BreakerBlobStore wraps a BlobStore with a circuit breaker so a degraded
// backend fast-fails instead of letting requests pile up on its timeouts.
type BreakerBlobStore struct {
	inner   BlobStore
	breaker *gobreaker.CircuitBreaker
}

var (
	_ BlobStore         = (*BreakerBlobStore)(nil)
	_ RemoteObjectStore = (*BreakerObjectStore)(nil)
)

// NewBreakerBlobStore wraps inner with a circuit breaker named after the
// blob provider.
func NewBreakerBlobStore(inner BlobStore, logger log.Logger) *BreakerBlobStore {
	return &BreakerBlobStore{
		inner:   inner,
		breaker: newStorageBreaker(ProviderGridFS, logger),
	}
}

// Upload stores the content of source through the circuit breaker.
func (bs *BreakerBlobStore) Upload(ctx context.Context, filename string, contentType string, source io.Reader) (string, error) {
	result, err := bs.breaker.Execute(func() (any, error) {
		return bs.inner.Upload(ctx, filename, contentType, source)
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// Download opens a read handle through the circuit breaker. Not-found and
// malformed-identifier results pass through without tripping it.
func (bs *BreakerBlobStore) Download(ctx context.Context, id string) (*Blob, error) {
	result, err := bs.breaker.Execute(func() (any, error) {
		return bs.inner.Download(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return result.(*Blob), nil
}

// Delete removes the object addressed by id through the circuit breaker.
func (bs *BreakerBlobStore) Delete(ctx context.Context, id string) error {
	_, err := bs.breaker.Execute(func() (any, error) {
		return nil, bs.inner.Delete(ctx, id)
	})

	return err
}

// BreakerObjectStore wraps a RemoteObjectStore with a circuit breaker.
type BreakerObjectStore struct {
	inner   RemoteObjectStore
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerObjectStore wraps inner with a circuit breaker named after the
// remote provider.
func NewBreakerObjectStore(inner RemoteObjectStore, logger log.Logger) *BreakerObjectStore {
	return &BreakerObjectStore{
		inner:   inner,
		breaker: newStorageBreaker(ProviderS3, logger),
	}
}

type objectUploadResult struct {
	url      string
	objectID string
}

// Upload stores the content of source through the circuit breaker.
func (os *BreakerObjectStore) Upload(ctx context.Context, key string, contentType string, source io.Reader) (string, string, error) {
	result, err := os.breaker.Execute(func() (any, error) {
		url, objectID, uploadErr := os.inner.Upload(ctx, key, contentType, source)
		if uploadErr != nil {
			return nil, uploadErr
		}

		return objectUploadResult{url: url, objectID: objectID}, nil
	})
	if err != nil {
		return "", "", err
	}

	upload := result.(objectUploadResult)

	return upload.url, upload.objectID, nil
}

// Delete removes the object addressed by objectID through the circuit breaker.
func (os *BreakerObjectStore) Delete(ctx context.Context, objectID string) error {
	_, err := os.breaker.Execute(func() (any, error) {
		return nil, os.inner.Delete(ctx, objectID)
	})

	return err
}

// Exists checks object presence through the circuit breaker.
func (os *BreakerObjectStore) Exists(ctx context.Context, objectID string) (bool, error) {
	result, err := os.breaker.Execute(func() (any, error) {
		return os.inner.Exists(ctx, objectID)
	})
	if err != nil {
		return false, err
	}

	return result.(bool), nil
}
