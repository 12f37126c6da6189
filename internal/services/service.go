// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package services implements the note document delivery use cases: storage
// resolution, download, upload, preview and best-effort counters.
package services

import (
	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"
	"github.com/notedeck/notedeck/pkg/storage"
)

// UseCase is the application glue for note document operations.
type UseCase struct {
	// NoteRepo provides an abstraction on top of the note record data source.
	NoteRepo note.Repository

	// BlobStore is the streamable binary store addressed by opaque identifier.
	BlobStore storage.BlobStore

	// ObjectStore is the external store addressed by durable URL. May be nil
	// when the deployment only uses the blob backend.
	ObjectStore storage.RemoteObjectStore

	// StorageProvider selects the backend for NEW uploads
	// (storage.ProviderGridFS or storage.ProviderS3).
	StorageProvider string

	// AppPublicBaseURL is this service's externally reachable base URL, used
	// to build raw content URLs for blob-backed notes in preview descriptors.
	AppPublicBaseURL string
}
