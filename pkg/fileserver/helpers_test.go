// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var testModTime = time.Date(2024, time.March, 3, 10, 30, 0, 0, time.UTC)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":             {Data: []byte("<h1>Hi</h1>"), ModTime: testModTime},
		"data/report.txt":        {Data: []byte("report-contents"), ModTime: testModTime},
		"data/blob.qqqzzz":       {Data: []byte{0x00, 0x01, 0x02}, ModTime: testModTime},
		"data/archive.tar.gz":    {Data: []byte("not really gzip"), ModTime: testModTime},
		"data/Zebra.txt":         {Data: []byte("z"), ModTime: testModTime},
		"data/nested/deep.json":  {Data: []byte(`{"a":1}`), ModTime: testModTime},
		"docs/index.htm":         {Data: []byte("old style index"), ModTime: testModTime},
		"spaced dir/a&b <c>.txt": {Data: []byte("odd name"), ModTime: testModTime},
		".git/config":            {Data: []byte("[core]"), ModTime: testModTime},
		"secret.env":             {Data: []byte("TOKEN=x"), ModTime: testModTime},
	}
}

func newTestHandler(t *testing.T, fsys fs.FS, config Config) *Handler {
	t.Helper()
	h, err := New(fsys, config)
	assert.NilError(t, err)
	return h
}

func processRequest(h http.Handler, method, target string, headers map[string]string) *http.Response {
	req := httptest.NewRequest(method, "http://example.com"+target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	record := httptest.NewRecorder()
	h.ServeHTTP(record, req)
	return record.Result()
}

func bodyAssert(t *testing.T, expected string, resp *http.Response) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	assert.Check(t, err)
	bodyString := string(body)
	assert.Check(t, is.Equal(expected, bodyString),
		"Expected response body '%s' but got '%s' instead",
		expected, bodyString,
	)
}

func headerAssert(t *testing.T, expected, name string, resp *http.Response) {
	t.Helper()
	assert.Check(t,
		is.Equal(expected, resp.Header.Get(name)),
		"Expected response header mismatch",
	)
}

func statusCodeAssert(t *testing.T, expected int, resp *http.Response) {
	t.Helper()
	assert.Check(t,
		is.Equal(expected, resp.StatusCode),
		"Expected %d but got '%d' instead",
		expected, resp.StatusCode,
	)
}
