// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"strings"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"
	"github.com/notedeck/notedeck/pkg"
	"github.com/notedeck/notedeck/pkg/constant"
	"github.com/notedeck/notedeck/pkg/preview"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
)

// ViewerOption is one embeddable viewer URL candidate for a note, in
// fallback order.
type ViewerOption struct {
	Kind preview.Strategy `json:"kind"`
	URL  string           `json:"url"`
}

// PreviewResult carries everything a client needs to render a note preview:
// the ordered viewer candidates plus the raw content URL as an escape hatch
// when every viewer misbehaves.
type PreviewResult struct {
	NoteID   uuid.UUID      `json:"noteId"`
	FileName string         `json:"fileName"`
	RawURL   string         `json:"rawUrl"`
	Viewers  []ViewerOption `json:"viewers"`
}

// PreviewNote resolves the note's raw content URL and wraps it into every
// configured viewer strategy. Incrementing the view counter is best effort:
// a counter failure never blocks the preview.
func (uc *UseCase) PreviewNote(ctx context.Context, noteID uuid.UUID) (*PreviewResult, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "services.preview_note")
	defer span.End()

	n, err := uc.NoteRepo.FindByID(ctx, noteID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find note", err)

		logger.Errorf("Failed to find note %s: %v", noteID, err)

		return nil, err
	}

	rawURL, err := uc.rawContentURL(n)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Note has no previewable content", err)

		return nil, err
	}

	if err := uc.NoteRepo.IncrementViewCount(ctx, noteID); err != nil {
		logger.Warnf("Failed to increment view count for note %s: %v", noteID, err)
	}

	viewers := make([]ViewerOption, 0, len(preview.DefaultStrategies))
	for _, strategy := range preview.DefaultStrategies {
		viewers = append(viewers, ViewerOption{
			Kind: strategy,
			URL:  preview.BuildViewerURL(rawURL, strategy),
		})
	}

	return &PreviewResult{
		NoteID:   n.ID,
		FileName: downloadFileName(n.DeclaredFileName, n.ID),
		RawURL:   rawURL,
		Viewers:  viewers,
	}, nil
}

// rawContentURL yields a URL the external viewers can fetch the document
// from. Remote objects already have one; blob-backed notes are served
// through this service's own download endpoint.
func (uc *UseCase) rawContentURL(n *note.Note) (string, error) {
	switch content := n.Content.(type) {
	case note.RemotePointer:
		return content.URL, nil
	case note.BlobPointer:
		base := strings.TrimRight(uc.AppPublicBaseURL, "/")

		return base + "/v1/notes/" + n.ID.String() + "/download", nil
	default:
		return "", pkg.ValidateBusinessError(constant.ErrNoteFileNotAvailable, "Note")
	}
}
