// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"
	"github.com/notedeck/notedeck/pkg"
	"github.com/notedeck/notedeck/pkg/constant"
	"github.com/notedeck/notedeck/pkg/storage"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
)

// ResolveContent decides which backend holds the note's document and returns
// the canonical content reference for it. Remote-object notes always resolve
// to a redirect; they never stream through this process. The call itself has
// no side effects on the note and is safe to repeat.
func (uc *UseCase) ResolveContent(ctx context.Context, n *note.Note) (ContentReference, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.resolve_content")
	defer span.End()

	switch pointer := n.Content.(type) {
	case note.RemotePointer:
		return RedirectContent{URL: pointer.URL}, nil

	case note.BlobPointer:
		blob, err := uc.BlobStore.Download(ctx, pointer.BlobID)
		if err != nil {
			if errors.Is(err, storage.ErrBlobNotFound) || errors.Is(err, storage.ErrInvalidBlobID) {
				// The note record points at a blob that is not in the store.
				// That is drift between the record and the blob store, not a
				// missing upload.
				logger.Warnf("Note %s references blob %s which is not in the blob store: %v", n.ID, pointer.BlobID, err)
			} else {
				libOpentelemetry.HandleSpanError(&span, "Failed to open blob stream", err)

				logger.Errorf("Failed to open blob stream for note %s: %v", n.ID, err)
			}

			return nil, pkg.ValidateBusinessError(constant.ErrStorageBackend, "Note")
		}

		contentType := blob.ContentType
		if contentType == "" {
			contentType = constant.DefaultContentType
		}

		return StreamContent{
			Body:        blob.Body,
			ContentType: contentType,
			ByteLength:  blob.Length,
		}, nil

	default:
		return nil, pkg.ValidateBusinessError(constant.ErrNoteFileNotAvailable, "Note")
	}
}
