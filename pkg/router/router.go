// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package router provides the front http.Handler for the file server.
package router

import (
	"net/http"
)

const (
	// HealthCheckPath answers 200 when health checks are enabled.
	HealthCheckPath = "/_health"
	// StatsPath serves the StatsHandler when set.
	StatsPath = "/_status"
	// MetricsPath serves the MetricsHandler when set.
	MetricsPath = "/_metrics"
)

// DumbRouter is a basic, special purpose, http router
type DumbRouter struct {
	ServerName  string
	FileHandler http.Handler
	AddHeaders  map[string]string
	// optional endpoints. nil means the path is served from the filesystem.
	StatsHandler   http.Handler
	MetricsHandler http.Handler
	HealthCheck    bool
}

// SetHeaders sets the headers on the response
func (dr *DumbRouter) SetHeaders(w http.ResponseWriter) {
	h := w.Header()
	for k, v := range dr.AddHeaders {
		h.Set(k, v)
	}
	h.Set("Date", formattedDate.String())
	if dr.ServerName != "" {
		h.Set("Server", dr.ServerName)
	}
}

// HealthCheckHandler is HTTP handler for confirming the backend service
// is available from an external client, such as a load balancer.
func (dr *DumbRouter) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ServeHTTP fulfills the http server interface
func (dr *DumbRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// set some default headers
	dr.SetHeaders(w)

	if r.Method != http.MethodHead && r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "405 Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	switch {
	case dr.HealthCheck && r.URL.Path == HealthCheckPath:
		dr.HealthCheckHandler(w, r)
	case dr.StatsHandler != nil && r.URL.Path == StatsPath:
		dr.StatsHandler.ServeHTTP(w, r)
	case dr.MetricsHandler != nil && r.URL.Path == MetricsPath:
		dr.MetricsHandler.ServeHTTP(w, r)
	case dr.FileHandler != nil:
		dr.FileHandler.ServeHTTP(w, r)
	default:
		http.Error(w, "404 Not Found", http.StatusNotFound)
	}
}
