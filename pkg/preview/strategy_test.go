// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package preview

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildViewerURL(t *testing.T) {
	t.Parallel()

	rawURL := "https://api.notedeck.app/v1/notes/9f1b/download?sig=a&b=c"
	escaped := url.QueryEscape(rawURL)

	tests := []struct {
		name     string
		strategy Strategy
		prefix   string
	}{
		{
			name:     "google docs viewer",
			strategy: StrategyGoogleDocs,
			prefix:   "https://docs.google.com/viewer?embedded=true&url=",
		},
		{
			name:     "office web viewer",
			strategy: StrategyOfficeWeb,
			prefix:   "https://view.officeapps.live.com/op/embed.aspx?src=",
		},
		{
			name:     "pdf.js viewer",
			strategy: StrategyPDFJS,
			prefix:   "https://mozilla.github.io/pdf.js/web/viewer.html?file=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := BuildViewerURL(rawURL, tt.strategy)
			assert.Equal(t, tt.prefix+escaped, got)
		})
	}
}

func TestBuildViewerURL_IsPure(t *testing.T) {
	t.Parallel()

	first := BuildViewerURL("https://example.com/a.pdf", StrategyGoogleDocs)
	second := BuildViewerURL("https://example.com/a.pdf", StrategyGoogleDocs)

	assert.Equal(t, first, second)
}

func TestDefaultStrategies_Order(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Strategy{StrategyGoogleDocs, StrategyOfficeWeb, StrategyPDFJS}, DefaultStrategies)
}
