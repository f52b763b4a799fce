// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestCountingWriter(t *testing.T) {
	t.Parallel()
	record := httptest.NewRecorder()
	cw := &countingWriter{ResponseWriter: record}

	var w http.ResponseWriter = cw
	_, ok := w.(io.ReaderFrom)
	assert.Check(t, ok)

	n, err := io.Copy(cw, strings.NewReader("hello "))
	assert.NilError(t, err)
	assert.Check(t, is.Equal(int64(6), n))
	_, err = cw.Write([]byte("world"))
	assert.NilError(t, err)

	assert.Check(t, is.Equal(int64(11), cw.written))
	assert.Check(t, is.Equal(http.StatusOK, cw.status))
	assert.Check(t, is.Equal("hello world", record.Body.String()))
}

func TestCountingWriterStatus(t *testing.T) {
	t.Parallel()
	record := httptest.NewRecorder()
	cw := &countingWriter{ResponseWriter: record}

	cw.WriteHeader(http.StatusNotModified)
	assert.Check(t, is.Equal(http.StatusNotModified, cw.status))
	assert.Check(t, is.Equal(http.StatusNotModified, record.Code))
}

func TestCountingWriterUnwrap(t *testing.T) {
	t.Parallel()
	record := httptest.NewRecorder()
	cw := &countingWriter{ResponseWriter: record}

	assert.Check(t, cw.Unwrap() == http.ResponseWriter(record))
	// ResponseController finds the recorder's Flush through Unwrap
	assert.NilError(t, http.NewResponseController(cw).Flush())
	assert.Check(t, record.Flushed)
}
