// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"errors"
	"time"

	"github.com/notedeck/notedeck/internal/adapters/http/in"
	"github.com/notedeck/notedeck/internal/services"
	"github.com/notedeck/notedeck/pkg/storage"
)

// Config is the top level configuration struct for the entire application.
type Config struct {
	EnvName                 string `env:"ENV_NAME"`
	ServerAddress           string `env:"SERVER_ADDRESS"`
	LogLevel                string `env:"LOG_LEVEL"`
	AppPublicBaseURL        string `env:"APP_PUBLIC_BASE_URL"`
	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry         bool   `env:"ENABLE_TELEMETRY"`

	MongoURI          string `env:"MONGO_URI"`
	MongoDBHost       string `env:"MONGO_HOST"`
	MongoDBName       string `env:"MONGO_NAME"`
	MongoDBUser       string `env:"MONGO_USER"`
	MongoDBPassword   string `env:"MONGO_PASSWORD"`
	MongoDBPort       string `env:"MONGO_PORT"`
	MongoDBParameters string `env:"MONGO_PARAMETERS"`
	MongoMaxPoolSize  string `env:"MONGO_MAX_POOL_SIZE"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
	RedisProtocol int    `env:"REDIS_PROTOCOL"`
	RedisTLS      bool   `env:"REDIS_TLS"`
	RedisCACert   string `env:"REDIS_CA_CERT"`

	// StorageProvider selects where attached documents live: "gridfs" keeps
	// blobs inside MongoDB; "s3" uploads to an S3-compatible object store.
	StorageProvider           string `env:"STORAGE_PROVIDER"`
	ObjectStorageEndpoint     string `env:"OBJECT_STORAGE_ENDPOINT"`
	ObjectStorageRegion       string `env:"OBJECT_STORAGE_REGION"`
	ObjectStorageBucket       string `env:"OBJECT_STORAGE_BUCKET"`
	ObjectStorageAccessKeyID  string `env:"OBJECT_STORAGE_ACCESS_KEY_ID"`
	ObjectStorageSecretKey    string `env:"OBJECT_STORAGE_SECRET_KEY"`
	ObjectStorageUsePathStyle bool   `env:"OBJECT_STORAGE_USE_PATH_STYLE"`
	ObjectStoragePublicURL    string `env:"OBJECT_STORAGE_PUBLIC_URL"`

	RateLimitEnabled       bool `env:"RATE_LIMIT_ENABLED"`
	RateLimitGlobalMax     int  `env:"RATE_LIMIT_GLOBAL_MAX"`
	RateLimitDownloadMax   int  `env:"RATE_LIMIT_DOWNLOAD_MAX"`
	RateLimitDispatchMax   int  `env:"RATE_LIMIT_DISPATCH_MAX"`
	RateLimitWindowSeconds int  `env:"RATE_LIMIT_WINDOW_SECONDS"`
}

// Validate checks the configuration for inconsistencies that would only
// surface later as confusing runtime failures.
func (cfg *Config) Validate() error {
	if cfg.StorageProvider == "" {
		cfg.StorageProvider = storage.ProviderGridFS
	}

	if cfg.StorageProvider != storage.ProviderGridFS && cfg.StorageProvider != storage.ProviderS3 {
		return errors.New("STORAGE_PROVIDER must be one of: gridfs, s3")
	}

	if cfg.StorageProvider == storage.ProviderS3 && cfg.ObjectStorageBucket == "" {
		return errors.New("OBJECT_STORAGE_BUCKET is required when STORAGE_PROVIDER is s3")
	}

	return nil
}

// rateLimitConfig maps the env-derived settings to the middleware config,
// applying conservative defaults for anything unset.
func (cfg *Config) rateLimitConfig(rlStorage in.RateLimitStorage) in.RateLimitConfig {
	globalMax := cfg.RateLimitGlobalMax
	if globalMax <= 0 {
		globalMax = 100
	}

	downloadMax := cfg.RateLimitDownloadMax
	if downloadMax <= 0 {
		downloadMax = 20
	}

	dispatchMax := cfg.RateLimitDispatchMax
	if dispatchMax <= 0 {
		dispatchMax = 50
	}

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	if window <= 0 {
		window = time.Minute
	}

	return in.RateLimitConfig{
		Enabled:     cfg.RateLimitEnabled,
		GlobalMax:   globalMax,
		DownloadMax: downloadMax,
		DispatchMax: dispatchMax,
		Window:      window,
		Storage:     rlStorage,
	}
}

// InitServers wires configuration, connections, repositories, services and
// the HTTP router into a runnable Service.
func InitServers() (*Service, error) {
	cfg, logger, err := initConfigAndLogger()
	if err != nil {
		return nil, err
	}

	telemetry, telemetryCleanup, err := initTelemetry(cfg, logger)
	if err != nil {
		return nil, err
	}

	mongo, mongoCleanup, err := initMongoDB(cfg, logger)
	if err != nil {
		telemetryCleanup()
		return nil, err
	}

	redisConnection, redisCleanup := initRedis(cfg, logger)

	objectStore, err := initObjectStore(cfg, logger)
	if err != nil {
		redisCleanup()
		mongoCleanup()
		telemetryCleanup()

		return nil, err
	}

	// Backends sit behind circuit breakers so a degraded store fast-fails
	// instead of stacking requests on its timeouts.
	var guardedObjectStore storage.RemoteObjectStore
	if objectStore != nil {
		guardedObjectStore = storage.NewBreakerObjectStore(objectStore, logger)
	}

	noteService := &services.UseCase{
		NoteRepo:         mongo.noteRepo,
		BlobStore:        storage.NewBreakerBlobStore(mongo.blobStore, logger),
		ObjectStore:      guardedObjectStore,
		StorageProvider:  cfg.StorageProvider,
		AppPublicBaseURL: cfg.AppPublicBaseURL,
	}

	noteHandler := &in.NoteHandler{
		Service: noteService,
	}

	rateLimit := cfg.rateLimitConfig(in.NewRedisStorage(redisConnection, logger))

	readiness := &in.ReadinessDeps{
		MongoConnection: mongo.connection,
		RedisConnection: redisConnection,
		ObjectStore:     objectStore,
	}

	httpApp := in.NewRoutes(logger, telemetry, noteHandler, rateLimit, readiness)
	serverAPI := NewServer(cfg, httpApp, logger, telemetry)

	return &Service{
		Server:          serverAPI,
		Logger:          logger,
		mongoConnection: mongo.connection,
		redisConnection: redisConnection,
		cleanups:        []func(){redisCleanup, mongoCleanup, telemetryCleanup},
	}, nil
}
