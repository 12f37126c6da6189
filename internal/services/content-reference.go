// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import "io"

// ContentReference is the resolved, backend-agnostic answer to "how do I get
// these bytes". It is created per request and discarded after the response is
// sent; remote URLs may be signed and blob streams are not reusable, so a
// reference must never be cached across requests.
type ContentReference interface {
	isContentReference()
}

// StreamContent carries bytes to be piped through this process. The receiver
// owns Body and must close it.
type StreamContent struct {
	Body        io.ReadCloser
	ContentType string
	ByteLength  int64
}

func (StreamContent) isContentReference() {}

// RedirectContent carries a URL the caller should fetch or open directly.
type RedirectContent struct {
	URL string
}

func (RedirectContent) isContentReference() {}
