// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"fmt"
	"strings"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"
	"github.com/notedeck/notedeck/internal/services"
	"github.com/notedeck/notedeck/pkg"
	"github.com/notedeck/notedeck/pkg/constant"
	"github.com/notedeck/notedeck/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NoteHandler struct {
	Service *services.UseCase
}

// CreateNote is a method that creates a note.
//
//	@Summary		Create a Note
//	@Description	Create a Note with the input payload
//	@Tags			Notes
//	@Accept			json
//	@Produce		json
//	@Param			note	body		note.CreateNoteInput	true	"Note Input"
//	@Success		201		{object}	note.Note
//	@Router			/v1/notes [post]
func (nh *NoteHandler) CreateNote(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.create_note")
	defer span.End()

	c.SetUserContext(ctx)

	payload := p.(*note.CreateNoteInput)
	logger.Infof("Request to create a note with details: %#v", payload)

	created, err := nh.Service.CreateNote(ctx, payload)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create note on service", err)

		return http.WithError(c, err)
	}

	logger.Infof("Successfully created note %s", created.ID)

	return http.Created(c, created)
}

// GetNoteByID is a method that retrieves Note information by a given id.
//
//	@Summary		Get a Note by ID
//	@Description	Get a Note with the input ID
//	@Tags			Notes
//	@Produce		json
//	@Param			id	path		string	true	"Note ID"
//	@Success		200	{object}	note.Note
//	@Router			/v1/notes/{id} [get]
func (nh *NoteHandler) GetNoteByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_note_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Initiating retrieval of note with ID: %s", id.String())

	n, err := nh.Service.GetNote(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to retrieve note on service", err)

		logger.Errorf("Failed to retrieve note with ID: %s, Error: %s", id.String(), err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully retrieved note with ID: %s", id.String())

	return http.OK(c, n)
}

// AttachNoteFile is a method that attaches the document file to a note.
//
//	@Summary		Attach a file to a Note
//	@Description	Upload the note's document as multipart form data under the "file" field
//	@Tags			Notes
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Note ID"
//	@Param			file	formData	file	true	"Document file"
//	@Success		201		{object}	note.Note
//	@Router			/v1/notes/{id}/file [post]
func (nh *NoteHandler) AttachNoteFile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.attach_note_file")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read multipart file", err)

		logger.Errorf("Failed to read multipart file for note %s: %v", id, err)

		if err.Error() == constant.ErrFileAccepted {
			return http.WithError(c, pkg.ValidateBusinessError(constant.ErrEmptyFile, "Note"))
		}

		return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidFileUploaded, "Note"))
	}

	source, err := fileHeader.Open()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to open multipart file", err)

		return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidFileUploaded, "Note"))
	}
	defer source.Close()

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	if strings.TrimSpace(contentType) == "" {
		contentType = constant.DefaultContentType
	}

	upload := &services.FileUpload{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		ByteSize:    fileHeader.Size,
		Source:      source,
	}

	logger.Infof("Request to attach file %s (%d bytes) to note %s", upload.FileName, upload.ByteSize, id)

	updated, err := nh.Service.AttachNoteFile(ctx, id, upload)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to attach file on service", err)

		return http.WithError(c, err)
	}

	logger.Infof("Successfully attached file to note %s", id)

	return http.Created(c, updated)
}

// GetDownloadNote is a method that delivers a note's document content.
// Blob-backed notes are streamed inline as an attachment; remote-backed
// notes answer with the durable object URL for the caller to follow.
//
//	@Summary		Download a Note document
//	@Description	Stream the note document or return its remote URL
//	@Tags			Notes
//	@Produce		application/octet-stream
//	@Produce		json
//	@Param			id	path	string	true	"Note ID"
//	@Success		200
//	@Router			/v1/notes/{id}/download [get]
func (nh *NoteHandler) GetDownloadNote(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_download_note")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Initiating download of note with ID: %s", id.String())

	result, err := nh.Service.DownloadNote(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to resolve note content", err)

		logger.Errorf("Failed to resolve content for note %s: %v", id, err)

		return http.WithError(c, err)
	}

	switch ref := result.Reference.(type) {
	case services.RedirectContent:
		logger.Infof("Answering note %s download with remote URL", id)

		return http.OK(c, fiber.Map{"downloadUrl": ref.URL})
	case services.StreamContent:
		defer ref.Body.Close()

		c.Set(fiber.HeaderContentType, ref.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.FileName))

		size := -1
		if ref.ByteLength > 0 {
			size = int(ref.ByteLength)
		}

		logger.Infof("Streaming note %s (%d bytes)", id, ref.ByteLength)

		return c.SendStream(ref.Body, size)
	default:
		err := pkg.ValidateBusinessError(constant.ErrNoteFileNotAvailable, "Note")

		libOpentelemetry.HandleSpanError(&span, "Note content reference has unknown type", err)

		return http.WithError(c, err)
	}
}

// TrackNoteDownload is a method that records one completed download. Clients
// call it after materializing a remote-backed document themselves, since
// those downloads never pass through GetDownloadNote's streaming path.
//
//	@Summary		Record a Note download
//	@Description	Increment the note's download counter
//	@Tags			Notes
//	@Produce		json
//	@Param			id	path	string	true	"Note ID"
//	@Success		200
//	@Router			/v1/notes/{id}/download [post]
func (nh *NoteHandler) TrackNoteDownload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.track_note_download")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	if err := nh.Service.TrackNoteDownload(ctx, id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to track note download", err)

		logger.Errorf("Failed to track download for note %s: %v", id, err)

		return http.WithError(c, err)
	}

	return http.OK(c, fiber.Map{"status": "recorded"})
}

// GetNotePreview is a method that builds the preview descriptor for a note.
//
//	@Summary		Get a Note preview descriptor
//	@Description	Resolve the raw content URL and the ordered embeddable viewer candidates
//	@Tags			Notes
//	@Produce		json
//	@Param			id	path		string	true	"Note ID"
//	@Success		200	{object}	services.PreviewResult
//	@Router			/v1/notes/{id}/preview [get]
func (nh *NoteHandler) GetNotePreview(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_note_preview")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Building preview descriptor for note %s", id)

	result, err := nh.Service.PreviewNote(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to build preview on service", err)

		logger.Errorf("Failed to build preview for note %s: %v", id, err)

		return http.WithError(c, err)
	}

	return http.OK(c, result)
}
