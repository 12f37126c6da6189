// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import "time"

// Provider names for the backend that receives NEW uploads. Existing notes
// keep whatever backend they were uploaded to; the provider is never used to
// migrate documents.
const (
	ProviderGridFS = "gridfs"
	ProviderS3     = "s3"
)

// DefaultPresignExpiry is used for S3 object URLs when no public base URL is
// configured. Long-lived so the stored URL stays fetchable for the lifetime
// of a typical note.
const DefaultPresignExpiry = 7 * 24 * time.Hour

// Config holds configuration for both storage backends.
type Config struct {
	// Backend for new uploads: "gridfs" (default) or "s3".
	Provider string

	// S3 configuration. Works with AWS S3, MinIO, SeaweedFS S3 and other
	// S3-compatible services.
	S3Endpoint        string // For SeaweedFS: http://localhost:8333, for MinIO: http://localhost:9000
	S3Region          string // Default: us-east-1
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool // Required for SeaweedFS/MinIO

	// S3PublicBaseURL, when set, makes uploads return a plain public URL
	// (base + "/" + key) instead of a presigned one. Use for buckets served
	// through a CDN or public read policy.
	S3PublicBaseURL string

	// S3PresignExpiry bounds presigned URLs when S3PublicBaseURL is empty.
	// Zero means DefaultPresignExpiry.
	S3PresignExpiry time.Duration
}
