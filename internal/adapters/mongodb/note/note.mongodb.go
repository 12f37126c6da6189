// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package note

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/notedeck/notedeck/pkg"
	"github.com/notedeck/notedeck/pkg/constant"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libMongo "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository provides an interface for operations on note records in MongoDB.
//
//go:generate mockgen --destination=note.mongodb.mock.go --package=note . Repository
type Repository interface {
	Create(ctx context.Context, n *Note) (*Note, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Note, error)
	AttachContent(ctx context.Context, id uuid.UUID, pointer ContentPointer, fileName string, fileSize int64) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error
}

// NoteMongoDBRepository is a MongoDB-specific implementation of Repository.
type NoteMongoDBRepository struct {
	connection *libMongo.MongoConnection
	Database   string
}

// NewNoteMongoDBRepository returns a new instance of NoteMongoDBRepository
// using the given MongoDB connection.
func NewNoteMongoDBRepository(mc *libMongo.MongoConnection) (*NoteMongoDBRepository, error) {
	r := &NoteMongoDBRepository{
		connection: mc,
		Database:   mc.Database,
	}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		return nil, err
	}

	return r, nil
}

func (nr *NoteMongoDBRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := nr.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	return db.Database(strings.ToLower(nr.Database)).Collection(constant.NoteCollection), nil
}

// Create inserts a new note record into mongo.
func (nr *NoteMongoDBRepository) Create(ctx context.Context, n *Note) (*Note, error) {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongo.create_note")
	defer span.End()

	coll, err := nr.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	record := &NoteMongoDBModel{}
	record.FromEntity(n)

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to insert note", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByID retrieves a note record by its identifier.
func (nr *NoteMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongo.find_note_by_id")
	defer span.End()

	coll, err := nr.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	record := &NoteMongoDBModel{}

	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkg.ValidateBusinessError(constant.ErrNoteNotFound, "Note")
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to find note", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// AttachContent records the storage pointer and declared file metadata for a
// note after a successful upload.
func (nr *NoteMongoDBRepository) AttachContent(ctx context.Context, id uuid.UUID, pointer ContentPointer, fileName string, fileSize int64) error {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongo.attach_note_content")
	defer span.End()

	coll, err := nr.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	set := bson.M{
		"declared_file_name": fileName,
		"declared_byte_size": fileSize,
		"updated_at":         time.Now().UTC(),
	}

	switch p := pointer.(type) {
	case RemotePointer:
		set["object_url"] = p.URL
		set["object_id"] = p.ObjectID
	case BlobPointer:
		set["blob_id"] = p.BlobID
	default:
		return pkg.ValidateBusinessError(constant.ErrNoteFileNotAvailable, "Note")
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to attach note content", err)

		return err
	}

	if result.MatchedCount == 0 {
		return pkg.ValidateBusinessError(constant.ErrNoteNotFound, "Note")
	}

	return nil
}

// IncrementViewCount bumps the view counter by one. The update is a single
// atomic $inc so concurrent views never lose updates.
func (nr *NoteMongoDBRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return nr.incrementCounter(ctx, id, "view_count", "mongo.increment_note_views")
}

// IncrementDownloadCount bumps the download counter by one. The update is a
// single atomic $inc so concurrent downloads never lose updates.
func (nr *NoteMongoDBRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	return nr.incrementCounter(ctx, id, "download_count", "mongo.increment_note_downloads")
}

func (nr *NoteMongoDBRepository) incrementCounter(ctx context.Context, id uuid.UUID, field string, spanName string) error {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	coll, err := nr.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to increment counter", err)

		return err
	}

	if result.MatchedCount == 0 {
		return pkg.ValidateBusinessError(constant.ErrNoteNotFound, "Note")
	}

	return nil
}
