// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func textHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	})
}

func processRequest(dr *DumbRouter, method, target string) (*http.Response, string) {
	record := httptest.NewRecorder()
	dr.ServeHTTP(record, httptest.NewRequest(method, target, nil))
	resp := record.Result()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func newTestRouter() *DumbRouter {
	return &DumbRouter{
		ServerName:  "go-static",
		AddHeaders:  map[string]string{"X-Go-Static": "test"},
		FileHandler: textHandler("file"),
	}
}

func TestRouterHeaders(t *testing.T) {
	t.Parallel()
	dr := newTestRouter()

	resp, body := processRequest(dr, "GET", "/index.html")
	assert.Check(t, is.Equal(200, resp.StatusCode))
	assert.Check(t, is.Equal("file", body))
	assert.Check(t, is.Equal("go-static", resp.Header.Get("Server")))
	assert.Check(t, is.Equal("test", resp.Header.Get("X-Go-Static")))
	_, err := http.ParseTime(resp.Header.Get("Date"))
	assert.Check(t, err)
}

func TestRouterMethods(t *testing.T) {
	t.Parallel()
	dr := newTestRouter()

	for _, m := range []string{"POST", "PUT", "DELETE", "PATCH", "OPTIONS"} {
		resp, body := processRequest(dr, m, "/index.html")
		assert.Check(t, is.Equal(405, resp.StatusCode), "method %s", m)
		assert.Check(t, is.Equal("GET, HEAD", resp.Header.Get("Allow")), "method %s", m)
		assert.Check(t, is.Equal("405 Method Not Allowed\n", body), "method %s", m)
	}

	resp, _ := processRequest(dr, "HEAD", "/index.html")
	assert.Check(t, is.Equal(200, resp.StatusCode))
}

func TestRouterOptionalEndpointsDisabled(t *testing.T) {
	t.Parallel()
	dr := newTestRouter()

	// without the optional handlers, these are plain file paths
	for _, p := range []string{HealthCheckPath, StatsPath, MetricsPath} {
		resp, body := processRequest(dr, "GET", p)
		assert.Check(t, is.Equal(200, resp.StatusCode), "path %s", p)
		assert.Check(t, is.Equal("file", body), "path %s", p)
	}
}

func TestRouterOptionalEndpointsEnabled(t *testing.T) {
	t.Parallel()
	dr := newTestRouter()
	dr.HealthCheck = true
	dr.StatsHandler = textHandler("stats")
	dr.MetricsHandler = textHandler("metrics")

	resp, body := processRequest(dr, "GET", HealthCheckPath)
	assert.Check(t, is.Equal(200, resp.StatusCode))
	assert.Check(t, is.Equal("", body))

	_, body = processRequest(dr, "GET", StatsPath)
	assert.Check(t, is.Equal("stats", body))

	_, body = processRequest(dr, "GET", MetricsPath)
	assert.Check(t, is.Equal("metrics", body))

	_, body = processRequest(dr, "GET", "/other")
	assert.Check(t, is.Equal("file", body))
}

func TestRouterNoFileHandler(t *testing.T) {
	t.Parallel()
	dr := &DumbRouter{}
	resp, body := processRequest(dr, "GET", "/x")
	assert.Check(t, is.Equal(404, resp.StatusCode))
	assert.Check(t, is.Equal("404 Not Found\n", body))
}
