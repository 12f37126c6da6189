// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUseCase_CreateNote(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)
	uc := &UseCase{NoteRepo: mockRepo}

	uploaderID := uuid.New()

	input := &note.CreateNoteInput{
		Title:       "Calculus II - Week 3",
		Description: "Integration by parts, worked examples",
		Subject:     "mathematics",
		UploaderID:  uploaderID.String(),
	}

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *note.Note) (*note.Note, error) {
			assert.NotEqual(t, uuid.Nil, n.ID)
			assert.Equal(t, input.Title, n.Title)
			assert.Equal(t, input.Description, n.Description)
			assert.Equal(t, input.Subject, n.Subject)
			assert.Equal(t, uploaderID, n.UploaderID)
			assert.Nil(t, n.Content, "a new note starts without content")
			assert.False(t, n.CreatedAt.IsZero())

			return n, nil
		})

	created, err := uc.CreateNote(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, input.Title, created.Title)
}

func TestUseCase_CreateNote_RepositoryFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := note.NewMockRepository(ctrl)
	uc := &UseCase{NoteRepo: mockRepo}

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("write concern failed"))

	created, err := uc.CreateNote(context.Background(), &note.CreateNoteInput{Title: "t"})
	require.Error(t, err)
	assert.Nil(t, created)
}
