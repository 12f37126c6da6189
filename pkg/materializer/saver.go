// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package materializer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrEmptyPayload reports a download whose body carried zero bytes. An empty
// file on disk would look like a corrupt note, so nothing is kept.
var ErrEmptyPayload = errors.New("downloaded payload is empty")

// Saver persists a downloaded stream as a named file.
type Saver interface {
	Save(fileName string, source io.Reader) (string, error)
}

// FileSaver writes downloads into a target directory. The write goes to a
// temporary file first and is renamed into place only after the full body
// arrived, so a partially transferred document is never observable under its
// final name.
type FileSaver struct {
	// Dir is the destination directory. Created on demand.
	Dir string
}

// Compile-time interface satisfaction check.
var _ Saver = (*FileSaver)(nil)

// Save streams source into Dir under fileName and returns the final path.
// A zero-byte source yields ErrEmptyPayload and leaves nothing behind.
func (fs *FileSaver) Save(fileName string, source io.Reader) (string, error) {
	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create download directory")
	}

	tmp, err := os.CreateTemp(fs.Dir, ".materialize-*")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary file")
	}

	written, err := io.Copy(tmp, source)

	closeErr := tmp.Close()

	if err == nil {
		err = closeErr
	}

	if err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "failed to write download")
	}

	if written == 0 {
		os.Remove(tmp.Name())
		return "", ErrEmptyPayload
	}

	target := filepath.Join(fs.Dir, fileName)

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "failed to move download into place")
	}

	return target, nil
}
