// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestExtTyper(t *testing.T) {
	t.Parallel()
	typer := NewExtTyper(map[string]string{".webmanifest": "application/manifest+json"})

	tests := []struct {
		name string
		want string
	}{
		{"index.html", "text/html; charset=utf-8"},
		{"INDEX.HTML", "text/html; charset=utf-8"},
		{"report.txt", "text/plain; charset=utf-8"},
		{"style.css", "text/css; charset=utf-8"},
		{"logo.png", "image/png"},
		{"site.webmanifest", "application/manifest+json"},
		{"backup.tar.gz", "application/gzip"},
		{"backup.tar.xz", "application/x-xz"},
		{"Makefile", DefaultContentType},
		{"blob.qqqzzz", DefaultContentType},
	}

	for _, tt := range tests {
		assert.Check(t, is.Equal(tt.want, typer.ContentType(tt.name)), "name: %s", tt.name)
	}
}

func TestParseMimeOverrides(t *testing.T) {
	t.Parallel()

	out, err := ParseMimeOverrides(map[string]string{
		"wasm":  "application/wasm",
		".mjs ": " text/javascript ",
	})
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(
		map[string]string{".wasm": "application/wasm", ".mjs": "text/javascript"},
		out,
	))

	_, err = ParseMimeOverrides(map[string]string{"": "text/plain"})
	assert.Check(t, is.ErrorContains(err, "empty extension"))

	_, err = ParseMimeOverrides(map[string]string{".x": ""})
	assert.Check(t, is.ErrorContains(err, "bad content type"))
}

func TestExtTyperOverrideCase(t *testing.T) {
	t.Parallel()

	out, err := ParseMimeOverrides(map[string]string{
		".JSON": "application/vnd.test+json",
		"Z":     "application/x-compress",
	})
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(
		map[string]string{".json": "application/vnd.test+json", ".z": "application/x-compress"},
		out,
	))

	typer := NewExtTyper(out)
	assert.Check(t, is.Equal("application/vnd.test+json", typer.ContentType("x.json")))
	assert.Check(t, is.Equal("application/vnd.test+json", typer.ContentType("X.JSON")))
	assert.Check(t, is.Equal("application/x-compress", typer.ContentType("old.tar.Z")))

	typer = NewExtTyper(nil)
	assert.Check(t, is.Equal("application/gzip", typer.ContentType("BACKUP.GZ")))
}
