// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"
	"github.com/notedeck/notedeck/pkg"
	"github.com/notedeck/notedeck/pkg/constant"
	"github.com/notedeck/notedeck/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUseCase_DownloadNote_StreamsBlob(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)
	mockBlobStore := storage.NewMockBlobStore(ctrl)

	uc := &UseCase{
		NoteRepo:  mockRepo,
		BlobStore: mockBlobStore,
	}

	noteID := uuid.New()

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

	result, err := uc.DownloadNote(context.Background(), noteID)
	require.NoError(t, err)

	assert.Equal(t, "calculus-week3.pdf", result.FileName)

	_, ok := result.Reference.(StreamContent)
	assert.True(t, ok)
}

func TestUseCase_DownloadNote_CounterFailureDoesNotFailDownload(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)
	mockBlobStore := storage.NewMockBlobStore(ctrl)

	uc := &UseCase{
		NoteRepo:  mockRepo,
		BlobStore: mockBlobStore,
	}

	noteID := uuid.New()

	mockRepo.EXPECT().
		FindByID(gomock.Any(), noteID).
		Return(&note.Note{
			ID:      noteID,
			Content: note.BlobPointer{BlobID: "65f0c1a2b3d4e5f6a7b8c9d0"},
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
		Return(errors.New("mongo write timeout"))

	result, err := uc.DownloadNote(context.Background(), noteID)
	require.NoError(t, err, "a counter write failure must never fail the download")

	_, ok := result.Reference.(StreamContent)
	assert.True(t, ok)
}

func TestUseCase_DownloadNote_RedirectDoesNotCountServerSide(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)

	uc := &UseCase{NoteRepo: mockRepo}

	noteID := uuid.New()

	// No IncrementDownloadCount expectation: a redirect answer is not a
	// transfer, the client reports it through the tracking endpoint once the
	// bytes were actually fetched. Counting both sides would double-count.
	mockRepo.EXPECT().
		FindByID(gomock.Any(), noteID).
		Return(&note.Note{
			ID:      noteID,
			Content: note.RemotePointer{URL: "https://cdn.notedeck.app/n.pdf"},
		}, nil)

	result, err := uc.DownloadNote(context.Background(), noteID)
	require.NoError(t, err)

	redirect, ok := result.Reference.(RedirectContent)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.notedeck.app/n.pdf", redirect.URL)
}

func TestUseCase_DownloadNote_FileNameFallsBackToNoteID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)

	uc := &UseCase{NoteRepo: mockRepo}

	noteID := uuid.New()

	mockRepo.EXPECT().
		FindByID(gomock.Any(), noteID).
		Return(&note.Note{
			ID:      noteID,
			Content: note.RemotePointer{URL: "https://cdn.notedeck.app/n.pdf"},
		}, nil)

	result, err := uc.DownloadNote(context.Background(), noteID)
	require.NoError(t, err)

	assert.Equal(t, noteID.String()+".pdf", result.FileName)
}

func TestUseCase_DownloadNote_NoteNotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)

	uc := &UseCase{NoteRepo: mockRepo}

	noteID := uuid.New()

	mockRepo.EXPECT().
		FindByID(gomock.Any(), noteID).
		Return(nil, pkg.ValidateBusinessError(constant.ErrNoteNotFound, "Note"))

	result, err := uc.DownloadNote(context.Background(), noteID)
	require.Error(t, err)
	assert.Nil(t, result)

	var notFoundErr pkg.EntityNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, constant.ErrNoteNotFound.Error(), notFoundErr.Code)
}
