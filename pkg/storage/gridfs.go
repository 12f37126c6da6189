// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libMongo "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSStore implements BlobStore on top of MongoDB GridFS. Identifiers are
// hex-encoded ObjectIDs of the GridFS files collection.
type GridFSStore struct {
	connection *libMongo.MongoConnection
	database   string
	bucketName string
}

// NewGridFSStore creates a GridFS-backed blob store using the given MongoDB
// connection and bucket name.
func NewGridFSStore(mc *libMongo.MongoConnection, bucketName string) *GridFSStore {
	return &GridFSStore{
		connection: mc,
		database:   mc.Database,
		bucketName: bucketName,
	}
}

// bucket opens the GridFS bucket, propagating any context deadline to the
// bucket's stream deadlines since the v1 driver's GridFS API does not accept
// contexts directly.
func (g *GridFSStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	client, err := g.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	db := client.Database(strings.ToLower(g.database))

	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(g.bucketName))
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = bucket.SetReadDeadline(deadline)
		_ = bucket.SetWriteDeadline(deadline)
	}

	return bucket, nil
}

// Upload stores the content of source and returns the hex ObjectID addressing it.
func (g *GridFSStore) Upload(ctx context.Context, filename string, contentType string, source io.Reader) (string, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "storage.gridfs.upload")
	defer span.End()

	bucket, err := g.bucket(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to open gridfs bucket", err)

		return "", err
	}

	uploadOpts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})

	fileID, err := bucket.UploadFromStream(filename, source, uploadOpts)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to upload blob", err)

		logger.Errorf("Failed to upload blob %s to gridfs: %v", filename, err)

		return "", err
	}

	logger.Infof("Uploaded blob %s to gridfs bucket %s with id %s", filename, g.bucketName, fileID.Hex())

	return fileID.Hex(), nil
}

// Download opens a read handle on the object addressed by id.
func (g *GridFSStore) Download(ctx context.Context, id string) (*Blob, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "storage.gridfs.download")
	defer span.End()

	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidBlobID
	}

	bucket, err := g.bucket(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to open gridfs bucket", err)

		return nil, err
	}

	stream, err := bucket.OpenDownloadStream(fileID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrBlobNotFound
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to open download stream", err)

		logger.Errorf("Failed to open gridfs download stream for %s: %v", id, err)

		return nil, err
	}

	file := stream.GetFile()

	var meta struct {
		ContentType string `bson:"contentType"`
	}

	if len(file.Metadata) > 0 {
		_ = bson.Unmarshal(file.Metadata, &meta)
	}

	return &Blob{
		Body:        stream,
		Length:      file.Length,
		ContentType: meta.ContentType,
		FileName:    file.Name,
	}, nil
}

// Delete removes the object addressed by id.
func (g *GridFSStore) Delete(ctx context.Context, id string) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "storage.gridfs.delete")
	defer span.End()

	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidBlobID
	}

	bucket, err := g.bucket(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to open gridfs bucket", err)

		return err
	}

	if err := bucket.Delete(fileID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrBlobNotFound
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to delete blob", err)

		logger.Errorf("Failed to delete gridfs blob %s: %v", id, err)

		return err
	}

	return nil
}

// Compile-time interface check.
var _ BlobStore = (*GridFSStore)(nil)
