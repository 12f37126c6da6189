// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
)

// TrackNoteDownload increments the note's download counter. It backs the
// tracking side-channel endpoint, which must be safe to call even when the
// bytes were fetched through a different path (e.g. a signed URL opened
// directly by the browser).
func (uc *UseCase) TrackNoteDownload(ctx context.Context, id uuid.UUID) error {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.track_note_download")
	defer span.End()

	if err := uc.NoteRepo.IncrementDownloadCount(ctx, id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to increment download counter", err)

		logger.Errorf("Failed to increment download counter for note %s: %v", id, err)

		return err
	}

	return nil
}

// TrackNoteView increments the note's view counter.
func (uc *UseCase) TrackNoteView(ctx context.Context, id uuid.UUID) error {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.track_note_view")
	defer span.End()

	if err := uc.NoteRepo.IncrementViewCount(ctx, id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to increment view counter", err)

		logger.Errorf("Failed to increment view counter for note %s: %v", id, err)

		return err
	}

	return nil
}
