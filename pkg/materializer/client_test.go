// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package materializer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializer_StreamedDownload(t *testing.T) {
	t.Parallel()

	noteID := uuid.New()

	var trackCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			trackCalls.Add(1)
			w.WriteHeader(http.StatusOK)

			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="calculus week3.pdf"`)
		fmt.Fprint(w, "%PDF-1.7 body")
	}))
	defer server.Close()

	m := NewMaterializer(Config{
		BaseURL:   server.URL,
		TargetDir: t.TempDir(),
	})

	path, err := m.Materialize(context.Background(), noteID)
	require.NoError(t, err)

	assert.Equal(t, "calculus week3.pdf", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 body", string(data))

	assert.Equal(t, int32(0), trackCalls.Load(),
		"streamed downloads are counted server-side; no tracking call expected")
}

func TestMaterializer_RemoteDownloadFollowsURLAndTracks(t *testing.T) {
	t.Parallel()

	noteID := uuid.New()

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "remote object bytes")
	}))
	defer remote.Close()

	var trackCalls atomic.Int32

	service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			trackCalls.Add(1)
			w.WriteHeader(http.StatusOK)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"downloadUrl": remote.URL + "/notes/abc.pdf"})
	}))
	defer service.Close()

	m := NewMaterializer(Config{
		BaseURL:   service.URL,
		TargetDir: t.TempDir(),
	})

	path, err := m.Materialize(context.Background(), noteID)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "remote object bytes", string(data))

	assert.Equal(t, noteID.String()+".pdf", filepath.Base(path),
		"without a declared filename the note ID names the file")
	assert.Equal(t, int32(1), trackCalls.Load(),
		"remote downloads bypass the service stream, so the client reports them")
}

func TestMaterializer_EmptyPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
	}))
	defer server.Close()

	dir := t.TempDir()

	m := NewMaterializer(Config{
		BaseURL:   server.URL,
		TargetDir: dir,
		Opener: func(string) error {
			t.Error("an empty payload must not fall back to the opener")
			return nil
		},
	})

	path, err := m.Materialize(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrEmptyPayload)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file may be left behind for an empty download")
}

func TestMaterializer_ServiceErrorEnvelopeIsSurfaced(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "NDK-0005",
			"title":   "File Not Available",
			"message": "The note exists but has no document attached.",
		})
	}))
	defer server.Close()

	m := NewMaterializer(Config{
		BaseURL:   server.URL,
		TargetDir: t.TempDir(),
	})

	_, err := m.Materialize(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NDK-0005")
	assert.Contains(t, err.Error(), "no document attached")
}

func TestMaterializer_RejectsConcurrentDownloadOfSameNote(t *testing.T) {
	t.Parallel()

	noteID := uuid.New()

	release := make(chan struct{})
	started := make(chan struct{})

	var startOnce sync.Once

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		startOnce.Do(func() { close(started) })
		<-release

		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "bytes")
	}))
	defer server.Close()

	m := NewMaterializer(Config{
		BaseURL:   server.URL,
		TargetDir: t.TempDir(),
	})

	firstDone := make(chan error, 1)

	go func() {
		_, err := m.Materialize(context.Background(), noteID)
		firstDone <- err
	}()

	<-started

	_, err := m.Materialize(context.Background(), noteID)
	assert.ErrorIs(t, err, ErrDownloadInFlight)

	close(release)
	require.NoError(t, <-firstDone)
}

func TestMaterializer_FetchFailureFallsBackToOpener(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	noteID := uuid.New()

	var openedURL string

	m := NewMaterializer(Config{
		BaseURL:   server.URL,
		TargetDir: t.TempDir(),
		Opener: func(url string) error {
			openedURL = url
			return nil
		},
	})

	path, err := m.Materialize(context.Background(), noteID)

	require.NoError(t, err, "a successful fallback open resolves the request")
	assert.Empty(t, path, "nothing was saved locally")
	assert.Equal(t, server.URL+"/v1/notes/"+noteID.String()+"/download", openedURL)
}

func TestMaterializer_FetchFailureWithFailingOpenerWrapsBoth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	m := NewMaterializer(Config{
		BaseURL:   server.URL,
		TargetDir: t.TempDir(),
		Opener: func(string) error {
			return fmt.Errorf("no browser available")
		},
	})

	_, err := m.Materialize(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "no browser available")
}

func TestMaterializer_OpenerFailureKeepsFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "bytes")
	}))
	defer server.Close()

	m := NewMaterializer(Config{
		BaseURL:   server.URL,
		TargetDir: t.TempDir(),
		Opener: func(string) error {
			return fmt.Errorf("no pdf viewer installed")
		},
	})

	path, err := m.Materialize(context.Background(), uuid.New())
	require.NoError(t, err, "an opener failure must not fail the materialization")

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "the file stays on disk for the user to open manually")
}
