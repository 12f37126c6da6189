// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

const ApplicationName = "notedeck"

// NoteCollection is the MongoDB collection holding note records.
const NoteCollection = "notes"

// BlobBucketName is the GridFS bucket name for note documents.
const BlobBucketName = "note_files"

// DefaultContentType is assumed when neither the note record nor the storage
// backend declares a content type. The platform domain is one PDF per note.
const DefaultContentType = "application/pdf"

// MongoDefaultMaxPoolSize is used when MONGO_MAX_POOL_SIZE is unset or zero.
const MongoDefaultMaxPoolSize = 100

// RedactPlaceholder is the replacement value for masked credentials in connection strings.
const RedactPlaceholder = "REDACTED"

// ErrFileAccepted is the Fiber error message when no file is associated with the given form key.
const ErrFileAccepted = "there is no uploaded file associated with the given key"

// Circuit breaker settings for the storage backends.
const (
	CircuitBreakerMaxRequests uint32 = 3
	CircuitBreakerInterval           = 60 * time.Second
	CircuitBreakerTimeout            = 30 * time.Second
	CircuitBreakerThreshold   uint32 = 5
)
