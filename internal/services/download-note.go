// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"strings"

	"github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// DownloadResult is the resolved response for a download request: either a
// stream or a redirect, plus the filename the client should save under.
type DownloadResult struct {
	Reference ContentReference
	FileName  string
}

// DownloadNote looks up the note, resolves its content reference and returns
// it together with the download filename. Once resolution succeeds the
// download counter is incremented best-effort: a failed counter write is
// logged and never fails the download itself.
func (uc *UseCase) DownloadNote(ctx context.Context, id uuid.UUID) (*DownloadResult, error) {
	logger, tracer, reqID, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.download_note")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqID),
		attribute.String("app.request.note_id", id.String()),
	)

	logger.Infof("Downloading document for note %v", id)

	n, err := uc.NoteRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to retrieve note on query", err)

		logger.Errorf("Failed to retrieve Note with ID: %s, Error: %s", id, err.Error())

		return nil, err
	}

	ref, err := uc.ResolveContent(ctx, n)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to resolve note content", err)

		return nil, err
	}

	// From here on we are committed to responding successfully; the counter
	// is a best-effort side effect, not part of the response contract. Only
	// streamed deliveries count here: a redirect answer is not a transfer,
	// the client reports those through the tracking endpoint after it has
	// actually fetched the bytes.
	if _, streamed := ref.(StreamContent); streamed {
		if err := uc.NoteRepo.IncrementDownloadCount(ctx, id); err != nil {
			logger.Warnf("Failed to increment download counter for note %s: %v", id, err)
		}
	}

	return &DownloadResult{
		Reference: ref,
		FileName:  downloadFileName(n.DeclaredFileName, id),
	}, nil
}

// downloadFileName prefers the filename declared at upload time and falls
// back to "<noteId>.pdf".
func downloadFileName(declared string, id uuid.UUID) string {
	if strings.TrimSpace(declared) != "" {
		return declared
	}

	return id.String() + ".pdf"
}
