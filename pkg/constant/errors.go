// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import (
	"errors"
)

// List of errors that can be returned.
// You can standardize errors
// Standardized error
var (
	ErrMissingRequiredFields        = errors.New("NDK-0001")
	ErrUnexpectedFieldsInTheRequest = errors.New("NDK-0002")
	ErrInvalidPathParameter         = errors.New("NDK-0003")
	ErrNoteNotFound                 = errors.New("NDK-0004")
	ErrNoteFileNotAvailable         = errors.New("NDK-0005")
	ErrStorageBackend               = errors.New("NDK-0006")
	ErrEmptyFile                    = errors.New("NDK-0007")
	ErrInvalidFileUploaded          = errors.New("NDK-0008")
	ErrNoteAlreadyHasFile           = errors.New("NDK-0009")
	ErrInternalServer               = errors.New("NDK-0010")
	ErrBadRequest                   = errors.New("NDK-0011")
	ErrInvalidFieldType             = errors.New("NDK-0012")
)
