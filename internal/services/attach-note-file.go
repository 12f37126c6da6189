// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"fmt"
	"io"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"
	"github.com/notedeck/notedeck/pkg"
	"github.com/notedeck/notedeck/pkg/constant"
	"github.com/notedeck/notedeck/pkg/storage"

	"github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
)

// FileUpload carries an uploaded document stream plus the metadata declared
// by the client.
type FileUpload struct {
	FileName    string
	ContentType string
	ByteSize    int64
	Source      io.Reader
}

// AttachNoteFile uploads the document into the configured storage backend and
// records the resulting content pointer on the note. The backend decision is
// made exactly once here; notes are never migrated between backends, and a
// note that already has a file rejects further uploads.
func (uc *UseCase) AttachNoteFile(ctx context.Context, id uuid.UUID, upload *FileUpload) (*note.Note, error) {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.attach_note_file")
	defer span.End()

	if upload.ByteSize == 0 {
		return nil, pkg.ValidateBusinessError(constant.ErrEmptyFile, "Note")
	}

	n, err := uc.NoteRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to retrieve note on query", err)

		return nil, err
	}

	if n.HasFile() {
		return nil, pkg.ValidateBusinessError(constant.ErrNoteAlreadyHasFile, "Note")
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = constant.DefaultContentType
	}

	pointer, err := uc.storeUpload(ctx, id, upload, contentType)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to store uploaded document", err)

		logger.Errorf("Failed to store document for note %s: %v", id, err)

		return nil, pkg.ValidateBusinessError(constant.ErrStorageBackend, "Note")
	}

	if err := uc.NoteRepo.AttachContent(ctx, id, pointer, upload.FileName, upload.ByteSize); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to attach content pointer", err)

		return nil, err
	}

	logger.Infof("Attached document %s (%d bytes) to note %s", upload.FileName, upload.ByteSize, id)

	n.Content = pointer
	n.DeclaredFileName = upload.FileName
	n.DeclaredByteSize = upload.ByteSize

	return n, nil
}

// storeUpload writes the stream into the configured backend and returns the
// content pointer recording where it went.
func (uc *UseCase) storeUpload(ctx context.Context, id uuid.UUID, upload *FileUpload, contentType string) (note.ContentPointer, error) {
	if uc.StorageProvider == storage.ProviderS3 && uc.ObjectStore != nil {
		key := fmt.Sprintf("notes/%s/%s", id, upload.FileName)

		url, objectID, err := uc.ObjectStore.Upload(ctx, key, contentType, upload.Source)
		if err != nil {
			return nil, err
		}

		return note.RemotePointer{URL: url, ObjectID: objectID}, nil
	}

	blobID, err := uc.BlobStore.Upload(ctx, upload.FileName, contentType, upload.Source)
	if err != nil {
		return nil, err
	}

	return note.BlobPointer{BlobID: blobID}, nil
}
