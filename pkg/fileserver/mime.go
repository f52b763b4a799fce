// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"fmt"
	"mime"
	"path"
	"strings"
)

// DefaultContentType is sent when nothing better is known about a file.
const DefaultContentType = "application/octet-stream"

// A Typer infers the content type of a file from its name.
type Typer interface {
	ContentType(name string) string
}

// compressed archives are served as themselves, never as an encoding of
// some other type.
var archiveTypes = map[string]string{
	".gz":  "application/gzip",
	".Z":   "application/octet-stream",
	".bz2": "application/x-bzip2",
	".xz":  "application/x-xz",
}

// used when the system mime tables do not know an extension
var fallbackTypes = map[string]string{
	".txt":   "text/plain; charset=utf-8",
	".md":    "text/markdown; charset=utf-8",
	".csv":   "text/csv; charset=utf-8",
	".ico":   "image/vnd.microsoft.icon",
	".map":   "application/json",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".zip":   "application/zip",
	".tar":   "application/x-tar",
}

// ExtTyper infers content types from file extensions.
type ExtTyper struct {
	overrides map[string]string
}

// NewExtTyper returns an ExtTyper. Overrides map an extension (with the
// leading dot) to a content type, and take precedence over the system
// mime tables. Extensions match without regard to case.
func NewExtTyper(overrides map[string]string) *ExtTyper {
	o := make(map[string]string, len(overrides))
	for k, v := range overrides {
		o[strings.ToLower(k)] = v
	}
	return &ExtTyper{overrides: o}
}

// ContentType implements Typer.
func (t *ExtTyper) ContentType(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return DefaultContentType
	}
	lower := strings.ToLower(ext)
	if ct, ok := t.overrides[lower]; ok {
		return ct
	}
	// exact case first, .Z and .z differ
	if ct, ok := archiveTypes[ext]; ok {
		return ct
	}
	if ct, ok := archiveTypes[lower]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	if ct, ok := fallbackTypes[lower]; ok {
		return ct
	}
	return DefaultContentType
}

// ParseMimeOverrides validates a set of extension to content type
// overrides, normalizing extensions to lower case with a leading dot.
func ParseMimeOverrides(in map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for ext, ct := range in {
		ext = strings.TrimSpace(ext)
		ct = strings.TrimSpace(ct)
		if ext == "" || ext == "." {
			return nil, fmt.Errorf("empty extension for content type %q", ct)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		ext = strings.ToLower(ext)
		if _, _, err := mime.ParseMediaType(ct); err != nil {
			return nil, fmt.Errorf("bad content type for %s: %w", ext, err)
		}
		out[ext] = ct
	}
	return out, nil
}
