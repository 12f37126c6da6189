// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package materializer turns a note's download endpoint into a real file on
// the local filesystem. It hides the two delivery shapes the endpoint can
// answer with: a direct byte stream for blob-backed notes, or a JSON body
// carrying the durable object URL for remote-backed ones.
package materializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrDownloadInFlight reports that the same note is already being
// materialized. The caller should simply wait for the first download.
var ErrDownloadInFlight = errors.New("download already in flight for this note")

const defaultHTTPTimeout = 5 * time.Minute

// Opener hands a finished download to the host environment, typically to
// open the file with the platform's PDF viewer.
type Opener func(path string) error

// Config tunes a Materializer.
type Config struct {
	// BaseURL is the note service root, e.g. "https://api.notedeck.app".
	BaseURL string

	// TargetDir is where finished downloads land.
	TargetDir string

	// HTTPClient defaults to a client with a generous timeout sized for
	// slow document transfers.
	HTTPClient *http.Client

	// Saver defaults to a FileSaver on TargetDir.
	Saver Saver

	// Opener, when set, is invoked with the finished file's path. An opener
	// failure never fails the materialization: the file is already safe on
	// disk and the path is returned to the caller.
	Opener Opener

	Logger log.Logger
}

// Materializer downloads note documents to local files. Safe for concurrent
// use; concurrent requests for the same note are rejected rather than
// duplicated.
type Materializer struct {
	baseURL string
	client  *http.Client
	saver   Saver
	opener  Opener
	logger  log.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewMaterializer builds a Materializer from cfg, applying defaults for
// anything unset.
func NewMaterializer(cfg Config) *Materializer {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	saver := cfg.Saver
	if saver == nil {
		saver = &FileSaver{Dir: cfg.TargetDir}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = &log.NoneLogger{}
	}

	return &Materializer{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		client:   client,
		saver:    saver,
		opener:   cfg.Opener,
		logger:   logger,
		inFlight: make(map[uuid.UUID]struct{}),
	}
}

// Materialize downloads the note's document and returns the path of the
// saved file. Exactly one materialization per note runs at a time; a second
// concurrent call fails fast with ErrDownloadInFlight.
//
// When the download or save fails and an Opener is configured, the download
// endpoint is handed to the opener instead and Materialize returns an empty
// path with a nil error.
func (m *Materializer) Materialize(ctx context.Context, noteID uuid.UUID) (string, error) {
	if err := m.acquire(noteID); err != nil {
		return "", err
	}
	defer m.release(noteID)

	body, fileName, tracked, err := m.fetch(ctx, noteID)
	if err != nil {
		return "", m.fallbackOpen(noteID, err)
	}
	defer body.Close()

	path, err := m.saver.Save(fileName, body)
	if err != nil {
		return "", m.fallbackOpen(noteID, err)
	}

	// The service only counts streamed downloads on its own; remote-backed
	// documents were fetched straight from object storage, so report those.
	if !tracked {
		m.trackDownload(ctx, noteID)
	}

	if m.opener != nil {
		if openErr := m.opener(path); openErr != nil {
			m.logger.Warnf("Failed to open %s, file kept on disk: %v", path, openErr)
		}
	}

	return path, nil
}

// fallbackOpen hands the download endpoint itself to the opener when local
// materialization failed, so the user still reaches the document in the host
// environment. An empty payload is excluded: there is nothing to reach.
func (m *Materializer) fallbackOpen(noteID uuid.UUID, cause error) error {
	if m.opener == nil || errors.Is(cause, ErrEmptyPayload) {
		return cause
	}

	endpoint := fmt.Sprintf("%s/v1/notes/%s/download", m.baseURL, noteID)

	if openErr := m.opener(endpoint); openErr != nil {
		return errors.Wrapf(cause, "materialization failed and opening %s failed (%v)", endpoint, openErr)
	}

	m.logger.Warnf("Materialization for note %s failed, opened %s externally instead: %v", noteID, endpoint, cause)

	return nil
}

func (m *Materializer) acquire(noteID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.inFlight[noteID]; busy {
		return ErrDownloadInFlight
	}

	m.inFlight[noteID] = struct{}{}

	return nil
}

func (m *Materializer) release(noteID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.inFlight, noteID)
}

// fetch resolves the note's content to an open byte stream plus the file
// name it should be saved under. The tracked flag reports whether the
// service already counted this download server-side.
func (m *Materializer) fetch(ctx context.Context, noteID uuid.UUID) (io.ReadCloser, string, bool, error) {
	endpoint := fmt.Sprintf("%s/v1/notes/%s/download", m.baseURL, noteID)

	resp, err := m.get(ctx, endpoint)
	if err != nil {
		return nil, "", false, err
	}

	contentType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if contentType != "application/json" {
		// Direct stream: the service counted the download while serving it.
		return resp.Body, m.fileName(resp, noteID), true, nil
	}

	var envelope struct {
		DownloadURL string `json:"downloadUrl"`
	}

	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	resp.Body.Close()

	if decodeErr != nil {
		return nil, "", false, errors.Wrap(decodeErr, "failed to decode download response")
	}

	if envelope.DownloadURL == "" {
		return nil, "", false, errors.New("download response carried no url")
	}

	remote, err := m.get(ctx, envelope.DownloadURL)
	if err != nil {
		return nil, "", false, err
	}

	return remote.Body, m.fileName(remote, noteID), false, nil
}

// get issues a GET and folds every failure shape, transport errors and
// error-status bodies alike, into one actionable error.
func (m *Materializer) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reach note service")
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()

		return nil, serviceError(resp)
	}

	return resp, nil
}

// serviceError extracts the service's structured error envelope, falling
// back to the bare status when the body is not one.
func serviceError(resp *http.Response) error {
	var envelope struct {
		Code    string `json:"code"`
		Title   string `json:"title"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
		return fmt.Errorf("download failed (%s): %s", envelope.Code, envelope.Message)
	}

	return fmt.Errorf("download failed with status %d", resp.StatusCode)
}

// fileName picks the local file name: the Content-Disposition attachment
// name when present, the note ID otherwise, always sanitized.
func (m *Materializer) fileName(resp *http.Response, noteID uuid.UUID) string {
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			return SanitizeFileName(name)
		}
	}

	return SanitizeFileName(noteID.String())
}

// trackDownload reports one completed download. Best effort: counters are
// advisory and a tracking failure must never fail a finished download.
func (m *Materializer) trackDownload(ctx context.Context, noteID uuid.UUID) {
	endpoint := fmt.Sprintf("%s/v1/notes/%s/download", m.baseURL, noteID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		m.logger.Warnf("Failed to build download tracking request for note %s: %v", noteID, err)
		return
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Warnf("Failed to track download for note %s: %v", noteID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.logger.Warnf("Download tracking for note %s answered status %d", noteID, resp.StatusCode)
	}
}
