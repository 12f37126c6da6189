// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package note

import (
	"time"

	"github.com/google/uuid"
)

// ContentPointer locates a note's document in exactly one storage backend.
// A nil pointer means the note has no file attached. Modeling this as a sum
// type keeps the "at most one backend" invariant structural instead of
// relying on whichever optional field happens to be populated.
type ContentPointer interface {
	isContentPointer()
}

// BlobPointer addresses a document in the blob store by opaque identifier.
type BlobPointer struct {
	BlobID string `json:"blobId"`
}

func (BlobPointer) isContentPointer() {}

// RemotePointer addresses a document in the remote object store by the
// durable URL returned at upload time, plus the opaque object identifier.
type RemotePointer struct {
	URL      string `json:"url"`
	ObjectID string `json:"objectId"`
}

func (RemotePointer) isContentPointer() {}

// Note represents the entity model for a shared note. Content is nil until a
// document is uploaded; the backend is decided once at upload time and the
// file is never migrated.
type Note struct {
	ID               uuid.UUID      `json:"id" example:"00000000-0000-0000-0000-000000000000"`
	Title            string         `json:"title" example:"Linear Algebra - Week 3"`
	Description      string         `json:"description,omitempty"`
	Subject          string         `json:"subject,omitempty" example:"MATH-201"`
	UploaderID       uuid.UUID      `json:"uploaderId,omitempty"`
	Content          ContentPointer `json:"content,omitempty"`
	DeclaredFileName string         `json:"declaredFileName,omitempty" example:"lecture.pdf"`
	DeclaredByteSize int64          `json:"declaredByteSize,omitempty"`
	ViewCount        int64          `json:"viewCount"`
	DownloadCount    int64          `json:"downloadCount"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// HasFile reports whether the note has a document in either backend.
func (n *Note) HasFile() bool {
	return n.Content != nil
}

// CreateNoteInput is the payload to create a note record. The document itself
// is attached by a separate multipart upload.
type CreateNoteInput struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description" validate:"max=4096"`
	Subject     string `json:"subject" validate:"max=64"`
	UploaderID  string `json:"uploaderId" validate:"omitempty,uuid"`
}

// NoteMongoDBModel represents the MongoDB model for a note. The two backend
// pointers are stored as flat optional fields; conversion back to the entity
// re-establishes the sum type, giving the remote pointer priority for legacy
// records that carry both.
type NoteMongoDBModel struct {
	ID               uuid.UUID `bson:"_id"`
	Title            string    `bson:"title"`
	Description      string    `bson:"description,omitempty"`
	Subject          string    `bson:"subject,omitempty"`
	UploaderID       uuid.UUID `bson:"uploader_id,omitempty"`
	BlobID           string    `bson:"blob_id,omitempty"`
	ObjectID         string    `bson:"object_id,omitempty"`
	ObjectURL        string    `bson:"object_url,omitempty"`
	DeclaredFileName string    `bson:"declared_file_name,omitempty"`
	DeclaredByteSize int64     `bson:"declared_byte_size,omitempty"`
	ViewCount        int64     `bson:"view_count"`
	DownloadCount    int64     `bson:"download_count"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

// ToEntity converts NoteMongoDBModel to Note.
func (nm *NoteMongoDBModel) ToEntity() *Note {
	n := &Note{
		ID:               nm.ID,
		Title:            nm.Title,
		Description:      nm.Description,
		Subject:          nm.Subject,
		UploaderID:       nm.UploaderID,
		DeclaredFileName: nm.DeclaredFileName,
		DeclaredByteSize: nm.DeclaredByteSize,
		ViewCount:        nm.ViewCount,
		DownloadCount:    nm.DownloadCount,
		CreatedAt:        nm.CreatedAt,
		UpdatedAt:        nm.UpdatedAt,
	}

	switch {
	case nm.ObjectURL != "":
		n.Content = RemotePointer{URL: nm.ObjectURL, ObjectID: nm.ObjectID}
	case nm.BlobID != "":
		n.Content = BlobPointer{BlobID: nm.BlobID}
	}

	return n
}

// FromEntity converts Note to NoteMongoDBModel.
func (nm *NoteMongoDBModel) FromEntity(n *Note) {
	nm.ID = n.ID
	nm.Title = n.Title
	nm.Description = n.Description
	nm.Subject = n.Subject
	nm.UploaderID = n.UploaderID
	nm.DeclaredFileName = n.DeclaredFileName
	nm.DeclaredByteSize = n.DeclaredByteSize
	nm.ViewCount = n.ViewCount
	nm.DownloadCount = n.DownloadCount
	nm.CreatedAt = n.CreatedAt
	nm.UpdatedAt = n.UpdatedAt

	switch pointer := n.Content.(type) {
	case RemotePointer:
		nm.ObjectURL = pointer.URL
		nm.ObjectID = pointer.ObjectID
	case BlobPointer:
		nm.BlobID = pointer.BlobID
	}
}
