// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3ObjectStore implements RemoteObjectStore over any S3-compatible service.
// The object identifier is the S3 key; the durable URL is either a public
// base URL join or a presigned GET, decided by configuration at construction.
type S3ObjectStore struct {
	s3            *s3.Client
	bucket        string
	publicBaseURL string
	presignExpiry time.Duration
}

// NewS3ObjectStore creates a new S3-backed remote object store with the given
// configuration.
func NewS3ObjectStore(ctx context.Context, cfg Config) (*S3ObjectStore, error) {
	if cfg.S3Bucket == "" {
		return nil, ErrBucketRequired
	}

	var opts []func(*config.LoadOptions) error

	if cfg.S3Region != "" {
		opts = append(opts, config.WithRegion(cfg.S3Region))
	}

	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	clientOpts := []func(*s3.Options){}

	if cfg.S3Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		})
	}

	if cfg.S3UsePathStyle {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	presignExpiry := cfg.S3PresignExpiry
	if presignExpiry == 0 {
		presignExpiry = DefaultPresignExpiry
	}

	return &S3ObjectStore{
		s3:            s3.NewFromConfig(awsCfg, clientOpts...),
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
		presignExpiry: presignExpiry,
	}, nil
}

// Upload stores the content of source under key and returns the durable URL
// plus the object identifier (the key itself).
func (store *S3ObjectStore) Upload(ctx context.Context, key string, contentType string, source io.Reader) (string, string, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "storage.s3.upload")
	defer span.End()

	if key == "" {
		return "", "", ErrKeyRequired
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        source,
		ContentType: aws.String(contentType),
	}

	if _, err := store.s3.PutObject(ctx, input); err != nil {
		libOpentelemetry.HandleSpanError(&span, "failed to upload object", err)

		logger.Errorf("failed to upload object %s: %v", key, err)

		return "", "", fmt.Errorf("uploading object: %w", err)
	}

	url, err := store.objectURL(ctx, key)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "failed to build object url", err)

		return "", "", err
	}

	logger.Infof("uploaded object %s to bucket %s", key, store.bucket)

	return url, key, nil
}

// objectURL returns the fetchable URL for a stored key: a plain join when a
// public base URL is configured, otherwise a presigned GET.
func (store *S3ObjectStore) objectURL(ctx context.Context, key string) (string, error) {
	if store.publicBaseURL != "" {
		return store.publicBaseURL + "/" + key, nil
	}

	presigner := s3.NewPresignClient(store.s3)

	input := &s3.GetObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	}

	result, err := presigner.PresignGetObject(ctx, input, s3.WithPresignExpires(store.presignExpiry))
	if err != nil {
		return "", fmt.Errorf("generating presigned url: %w", err)
	}

	return result.URL, nil
}

// Delete removes the object addressed by objectID.
func (store *S3ObjectStore) Delete(ctx context.Context, objectID string) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "storage.s3.delete")
	defer span.End()

	if objectID == "" {
		return ErrKeyRequired
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(objectID),
	}

	if _, err := store.s3.DeleteObject(ctx, input); err != nil {
		libOpentelemetry.HandleSpanError(&span, "failed to delete object", err)

		logger.Errorf("failed to delete object %s: %v", objectID, err)

		return fmt.Errorf("deleting object: %w", err)
	}

	logger.Infof("deleted object %s from bucket %s", objectID, store.bucket)

	return nil
}

// Exists checks if an object exists at the given objectID.
func (store *S3ObjectStore) Exists(ctx context.Context, objectID string) (bool, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "storage.s3.exists")
	defer span.End()

	if objectID == "" {
		return false, ErrKeyRequired
	}

	input := &s3.HeadObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(objectID),
	}

	if _, err := store.s3.HeadObject(ctx, input); err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return false, nil
		}

		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}

		libOpentelemetry.HandleSpanError(&span, "failed to check object existence", err)

		logger.Errorf("failed to check existence of %s: %v", objectID, err)

		return false, fmt.Errorf("checking object existence: %w", err)
	}

	return true, nil
}

// Compile-time interface check.
var _ RemoteObjectStore = (*S3ObjectStore)(nil)
