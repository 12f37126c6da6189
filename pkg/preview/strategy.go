// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package preview implements the viewer fallback machinery for rendering note
// documents through third-party embeddable viewers. The viewers are external
// dependencies outside this system's control, so every consumer must keep the
// raw content URL available as an escape hatch.
package preview

import "net/url"

// Strategy identifies one third-party document-rendering embed endpoint.
type Strategy string

const (
	// StrategyGoogleDocs renders through the Google Docs viewer. First in the
	// fallback order: most reliable for PDFs in practice.
	StrategyGoogleDocs Strategy = "google-docs"

	// StrategyOfficeWeb renders through the Office web viewer.
	StrategyOfficeWeb Strategy = "office-web"

	// StrategyPDFJS renders through the hosted PDF.js viewer. Last resort:
	// slowest to boot but has no server-side fetch restrictions.
	StrategyPDFJS Strategy = "pdfjs"
)

// DefaultStrategies is the fixed cyclic fallback ordering. The order encodes
// a reliability/latency trade-off: most reliable first.
var DefaultStrategies = []Strategy{StrategyGoogleDocs, StrategyOfficeWeb, StrategyPDFJS}

// BuildViewerURL wraps the raw content URL into the given strategy's embed
// endpoint. Pure: no I/O, same input always yields the same output.
func BuildViewerURL(rawURL string, strategy Strategy) string {
	escaped := url.QueryEscape(rawURL)

	switch strategy {
	case StrategyOfficeWeb:
		return "https://view.officeapps.live.com/op/embed.aspx?src=" + escaped
	case StrategyPDFJS:
		return "https://mozilla.github.io/pdf.js/web/viewer.html?file=" + escaped
	default:
		return "https://docs.google.com/viewer?embedded=true&url=" + escaped
	}
}
