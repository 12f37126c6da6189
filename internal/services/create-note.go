// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"time"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
)

// CreateNote registers a new note with its descriptive metadata. The note is
// created without content; the file is attached in a separate step.
func (uc *UseCase) CreateNote(ctx context.Context, input *note.CreateNoteInput) (*note.Note, error) {
	logger, tracer, reqID, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "services.create_note")
	defer span.End()

	logger.Infof("Request to create note with title: %s, Request ID: %s", input.Title, reqID)

	now := time.Now().UTC()

	// Format already validated on the request body; an empty uploader stays
	// the zero UUID for anonymous uploads.
	uploaderID, _ := uuid.Parse(input.UploaderID)

	n := &note.Note{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Subject:     input.Subject,
		UploaderID:  uploaderID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := uc.NoteRepo.Create(ctx, n)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create note", err)

		logger.Errorf("Failed to create note: %v", err)

		return nil, err
	}

	logger.Infof("Note created with ID: %s", created.ID)

	return created, nil
}
