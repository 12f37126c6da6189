// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package materializer

import (
	"path/filepath"
	"strings"
)

// illegalFileNameChars are characters rejected by at least one mainstream
// filesystem. Path separators are included so a hostile declared name can
// never escape the target directory.
const illegalFileNameChars = `\/:*?"<>|`

// SanitizeFileName turns a server-declared file name into something safe to
// write to a local filesystem. Illegal characters are dropped, runs of
// whitespace collapse to a single space, and the result always carries a
// .pdf extension since that is the only document type the service stores.
func SanitizeFileName(name string) string {
	var b strings.Builder

	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(illegalFileNameChars, r) {
			continue
		}

		b.WriteRune(r)
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")

	cleaned = strings.TrimSuffix(cleaned, filepath.Ext(cleaned))
	if cleaned == "" || cleaned == "." {
		cleaned = "note"
	}

	return cleaned + ".pdf"
}
