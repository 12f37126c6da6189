// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
)

// GetNote fetches a note's metadata by ID.
func (uc *UseCase) GetNote(ctx context.Context, noteID uuid.UUID) (*note.Note, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "services.get_note")
	defer span.End()

	n, err := uc.NoteRepo.FindByID(ctx, noteID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find note", err)

		logger.Errorf("Failed to find note %s: %v", noteID, err)

		return nil, err
	}

	return n, nil
}
