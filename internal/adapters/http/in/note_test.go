// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"
	"github.com/notedeck/notedeck/internal/services"
	"github.com/notedeck/notedeck/pkg"
	"github.com/notedeck/notedeck/pkg/constant"
	"github.com/notedeck/notedeck/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_NoteHandler_GetDownloadNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)
	mockBlobStore := storage.NewMockBlobStore(ctrl)

	noteID := uuid.New()

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
		verify         func(t *testing.T, body []byte, headers map[string]string)
	}{
		{
			name: "Success - Blob-backed note streams as attachment",
			mockSetup: func() {
				mockRepo.EXPECT().
					FindByID(gomock.Any(), noteID).
					Return(&note.Note{
						ID:               noteID,
						DeclaredFileName: "calculus-week3.pdf",
						Content:          note.BlobPointer{BlobID: "65f0c1a2b3d4e5f6a7b8c9d0"},
					}, nil)

				mockBlobStore.EXPECT().
					Download(gomock.Any(), "65f0c1a2b3d4e5f6a7b8c9d0").
					Return(&storage.Blob{
						Body:        io.NopCloser(strings.NewReader("pdf bytes")),
						Length:      9,
						ContentType: "application/pdf",
					}, nil)

				mockRepo.EXPECT().
					IncrementDownloadCount(gomock.Any(), noteID).
					Return(nil)
			},
			expectedStatus: fiber.StatusOK,
			verify: func(t *testing.T, body []byte, headers map[string]string) {
				assert.Equal(t, "pdf bytes", string(body))
				assert.Equal(t, "application/pdf", headers[fiber.HeaderContentType])
				assert.Equal(t, `attachment; filename="calculus-week3.pdf"`, headers[fiber.HeaderContentDisposition])
			},
		},
		{
			name: "Success - Remote-backed note answers with its URL",
			mockSetup: func() {
				// No counter expectation: redirects are counted by the
				// client's tracking POST, not by the redirect answer.
				mockRepo.EXPECT().
					FindByID(gomock.Any(), noteID).
					Return(&note.Note{
						ID:      noteID,
						Content: note.RemotePointer{URL: "https://cdn.notedeck.app/notes/abc.pdf"},
					}, nil)
			},
			expectedStatus: fiber.StatusOK,
			verify: func(t *testing.T, body []byte, _ map[string]string) {
				var envelope map[string]string
				require.NoError(t, json.Unmarshal(body, &envelope))
				assert.Equal(t, "https://cdn.notedeck.app/notes/abc.pdf", envelope["downloadUrl"])
			},
		},
		{
			name: "Error - Note not found",
			mockSetup: func() {
				mockRepo.EXPECT().
					FindByID(gomock.Any(), noteID).
					Return(nil, pkg.ValidateBusinessError(constant.ErrNoteNotFound, "Note"))
			},
			expectedStatus: fiber.StatusNotFound,
			verify: func(t *testing.T, body []byte, _ map[string]string) {
				assert.Contains(t, string(body), constant.ErrNoteNotFound.Error())
			},
		},
		{
			name: "Error - Note has no file",
			mockSetup: func() {
				mockRepo.EXPECT().
					FindByID(gomock.Any(), noteID).
					Return(&note.Note{ID: noteID}, nil)
			},
			expectedStatus: fiber.StatusNotFound,
			verify: func(t *testing.T, body []byte, _ map[string]string) {
				assert.Contains(t, string(body), constant.ErrNoteFileNotAvailable.Error(),
					"a missing file must be distinguishable from a missing note")
			},
		},
		{
			name: "Error - Blob store failure maps to bad gateway",
			mockSetup: func() {
				mockRepo.EXPECT().
					FindByID(gomock.Any(), noteID).
					Return(&note.Note{
						ID:      noteID,
						Content: note.BlobPointer{BlobID: "65f0c1a2b3d4e5f6a7b8c9d0"},
					}, nil)

				mockBlobStore.EXPECT().
					Download(gomock.Any(), gomock.Any()).
					Return(nil, storage.ErrBlobNotFound)
			},
			expectedStatus: fiber.StatusBadGateway,
			verify: func(t *testing.T, body []byte, _ map[string]string) {
				assert.Contains(t, string(body), constant.ErrStorageBackend.Error())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			svc := &services.UseCase{
				NoteRepo:  mockRepo,
				BlobStore: mockBlobStore,
			}

			handler := &NoteHandler{Service: svc}

			app := fiber.New(fiber.Config{
				DisableStartupMessage: true,
			})

			app.Get("/v1/notes/:id/download", ParsePathParametersUUID, handler.GetDownloadNote)

			req := httptest.NewRequest("GET", "/v1/notes/"+noteID.String()+"/download", nil)

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			headers := map[string]string{
				fiber.HeaderContentType:        resp.Header.Get(fiber.HeaderContentType),
				fiber.HeaderContentDisposition: resp.Header.Get(fiber.HeaderContentDisposition),
			}

			if tt.verify != nil {
				tt.verify(t, body, headers)
			}
		})
	}
}

func Test_NoteHandler_TrackNoteDownload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)

	noteID := uuid.New()

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success - Counter incremented",
			mockSetup: func() {
				mockRepo.EXPECT().
					IncrementDownloadCount(gomock.Any(), noteID).
					Return(nil)
			},
			expectedStatus: fiber.StatusOK,
		},
		{
			name: "Error - Counter failure answers 500 so the client can retry",
			mockSetup: func() {
				mockRepo.EXPECT().
					IncrementDownloadCount(gomock.Any(), noteID).
					Return(errors.New("mongo write timeout"))
			},
			expectedStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			handler := &NoteHandler{Service: &services.UseCase{NoteRepo: mockRepo}}

			app := fiber.New(fiber.Config{
				DisableStartupMessage: true,
			})

			app.Post("/v1/notes/:id/download", ParsePathParametersUUID, handler.TrackNoteDownload)

			req := httptest.NewRequest("POST", "/v1/notes/"+noteID.String()+"/download", nil)

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func Test_NoteHandler_GetNotePreview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)

	noteID := uuid.New()

	mockRepo.EXPECT().
		FindByID(gomock.Any(), noteID).
		Return(&note.Note{
			ID:               noteID,
			DeclaredFileName: "lecture.pdf",
			Content:          note.RemotePointer{URL: "https://cdn.notedeck.app/notes/abc.pdf"},
		}, nil)

	mockRepo.EXPECT().
		IncrementViewCount(gomock.Any(), noteID).
		Return(nil)

	handler := &NoteHandler{Service: &services.UseCase{NoteRepo: mockRepo}}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/v1/notes/:id/preview", ParsePathParametersUUID, handler.GetNotePreview)

	req := httptest.NewRequest("GET", "/v1/notes/"+noteID.String()+"/preview", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result services.PreviewResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, "https://cdn.notedeck.app/notes/abc.pdf", result.RawURL)
	assert.Equal(t, "lecture.pdf", result.FileName)
	assert.Len(t, result.Viewers, 3)
}

func Test_NoteHandler_CreateNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *note.Note) (*note.Note, error) {
			return n, nil
		})

	handler := &NoteHandler{Service: &services.UseCase{NoteRepo: mockRepo}}

	payload := note.CreateNoteInput{
		Title:   "Calculus II - Week 3",
		Subject: "mathematics",
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Post("/v1/notes", func(c *fiber.Ctx) error {
		c.SetUserContext(context.Background())
		return handler.CreateNote(&payload, c)
	})

	payloadBytes, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/v1/notes", bytes.NewReader(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created note.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, payload.Title, created.Title)
}

func Test_NoteHandler_AttachNoteFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)
	mockBlobStore := storage.NewMockBlobStore(ctrl)

	noteID := uuid.New()

	tests := []struct {
		name           string
		fileContent    string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "Success - File stored in blob backend",
			fileContent: "%PDF-1.7 body",
			mockSetup: func() {
				mockRepo.EXPECT().
					FindByID(gomock.Any(), noteID).
					Return(&note.Note{ID: noteID}, nil)

				mockBlobStore.EXPECT().
					Upload(gomock.Any(), "lecture.pdf", "application/pdf", gomock.Any()).
					Return("65f0c1a2b3d4e5f6a7b8c9d0", nil)

				mockRepo.EXPECT().
					AttachContent(gomock.Any(), noteID, note.BlobPointer{BlobID: "65f0c1a2b3d4e5f6a7b8c9d0"}, "lecture.pdf", int64(13)).
					Return(nil)
			},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name:           "Error - Empty file rejected",
			fileContent:    "",
			mockSetup:      func() {},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			svc := &services.UseCase{
				NoteRepo:        mockRepo,
				BlobStore:       mockBlobStore,
				StorageProvider: storage.ProviderGridFS,
			}

			handler := &NoteHandler{Service: svc}

			app := fiber.New(fiber.Config{
				DisableStartupMessage: true,
			})

			app.Post("/v1/notes/:id/file", ParsePathParametersUUID, handler.AttachNoteFile)

			body := &bytes.Buffer{}
			writer := multipart.NewWriter(body)

			part, err := writer.CreatePart(map[string][]string{
				"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, "lecture.pdf")},
				"Content-Type":        {"application/pdf"},
			})
			require.NoError(t, err)

			_, err = part.Write([]byte(tt.fileContent))
			require.NoError(t, err)
			require.NoError(t, writer.Close())

			req := httptest.NewRequest("POST", "/v1/notes/"+noteID.String()+"/file", body)
			req.Header.Set("Content-Type", writer.FormDataContentType())

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
