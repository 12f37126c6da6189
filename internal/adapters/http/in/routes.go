// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"context"
	"time"

	"github.com/notedeck/notedeck/internal/adapters/mongodb/note"
	"github.com/notedeck/notedeck/pkg/net/http"
	"github.com/notedeck/notedeck/pkg/storage"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	mongoDB "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	"github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRedis "github.com/LerianStudio/lib-commons/v3/commons/redis"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const readinessCheckTimeout = 2 * time.Second

// ReadinessDeps holds the dependency connections needed for the /ready endpoint.
type ReadinessDeps struct {
	MongoConnection *mongoDB.MongoConnection
	RedisConnection *libRedis.RedisConnection

	// ObjectStore is only set when the remote object storage provider is
	// configured; blob storage health rides on the MongoDB check.
	ObjectStore storage.RemoteObjectStore
}

// NewRoutes creates a new fiber router with the specified handlers and middleware.
func NewRoutes(lg log.Logger, tl *opentelemetry.Telemetry, noteHandler *NoteHandler, rateLimit RateLimitConfig, deps *ReadinessDeps) *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return commonsHttp.HandleFiberError(ctx, err)
		},
	})
	tlMid := commonsHttp.NewTelemetryMiddleware(tl)

	f.Use(tlMid.WithTelemetry(tl))
	f.Use(RecoverMiddleware())
	f.Use(SecurityHeaders())
	f.Use(cors.New())
	f.Use(RateLimiterMiddleware(rateLimit))
	f.Use(commonsHttp.WithHTTPLogging(commonsHttp.WithCustomLogger(lg)))

	// Note routes
	f.Post("/v1/notes", http.WithBody(new(note.CreateNoteInput), noteHandler.CreateNote))
	f.Get("/v1/notes/:id", ParsePathParametersUUID, noteHandler.GetNoteByID)
	f.Post("/v1/notes/:id/file", ParsePathParametersUUID, noteHandler.AttachNoteFile)
	f.Get("/v1/notes/:id/download", ParsePathParametersUUID, noteHandler.GetDownloadNote)
	f.Post("/v1/notes/:id/download", ParsePathParametersUUID, noteHandler.TrackNoteDownload)
	f.Get("/v1/notes/:id/preview", ParsePathParametersUUID, noteHandler.GetNotePreview)

	// Health
	f.Get("/health", commonsHttp.Ping)

	// Readiness - checks all dependency connections
	f.Get("/ready", readinessHandler(deps))

	// Version
	f.Get("/version", commonsHttp.Version)

	f.Use(tlMid.EndTracingSpans)

	return f
}

// dependencyResult represents the health status of a single dependency in the readiness check.
type dependencyResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// readinessHandler returns a Fiber handler that checks all dependency connections.
// Each dependency is checked with a 2-second timeout. Returns 200 if all healthy, 503 otherwise.
func readinessHandler(deps *ReadinessDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		httpStatus := fiber.StatusOK
		results := make(map[string]*dependencyResult)

		// Check MongoDB (document metadata plus the GridFS blob bucket)
		results["mongodb"] = checkMongoDB(deps.MongoConnection)

		// Check Redis/Valkey
		results["redis"] = checkRedis(deps.RedisConnection)

		// Check remote object storage, when configured
		if deps.ObjectStore != nil {
			results["storage"] = checkObjectStore(deps.ObjectStore)
		}

		for _, result := range results {
			if result.Status != "ready" {
				httpStatus = fiber.StatusServiceUnavailable

				break
			}
		}

		overallStatus := "ready"
		if httpStatus == fiber.StatusServiceUnavailable {
			overallStatus = "not_ready"
		}

		return commonsHttp.JSONResponse(c, httpStatus, fiber.Map{
			"status":       overallStatus,
			"dependencies": results,
		})
	}
}

// checkMongoDB pings the MongoDB connection with a timeout.
func checkMongoDB(conn *mongoDB.MongoConnection) *dependencyResult {
	if conn == nil {
		return &dependencyResult{Status: "not_ready", Message: "connection not configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	db, err := conn.GetDB(ctx)
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "failed to get connection"}
	}

	if err = db.Ping(ctx, nil); err != nil {
		return &dependencyResult{Status: "not_ready", Message: "ping failed"}
	}

	return &dependencyResult{Status: "ready"}
}

// checkRedis pings the Redis/Valkey connection with a timeout.
func checkRedis(conn *libRedis.RedisConnection) *dependencyResult {
	if conn == nil {
		return &dependencyResult{Status: "not_ready", Message: "connection not configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	client, err := conn.GetClient(ctx)
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "failed to get client"}
	}

	if _, err = client.Ping(ctx).Result(); err != nil {
		return &dependencyResult{Status: "not_ready", Message: "ping failed"}
	}

	return &dependencyResult{Status: "ready"}
}

// checkObjectStore verifies the S3-compatible storage connection by checking
// for a non-existent key as a connectivity test. This exercises the S3 API
// path and confirms the bucket/endpoint is reachable.
func checkObjectStore(store storage.RemoteObjectStore) *dependencyResult {
	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	_, err := store.Exists(ctx, ".readiness-check")
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "storage connectivity check failed"}
	}

	return &dependencyResult{Status: "ready"}
}
