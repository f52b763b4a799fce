// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package stats keeps running totals of what the file server has sent.
package stats

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
)

// ServeStats is the counter container
type ServeStats struct {
	served   atomic.Uint64
	listings atomic.Uint64
	notFound atomic.Uint64
	bytes    atomic.Uint64
}

// Snapshot is a point in time copy of the counters.
type Snapshot struct {
	FilesServed    uint64
	ListingsServed uint64
	NotFound       uint64
	BytesServed    uint64
}

// AddServed increments the number of files served counter
func (ss *ServeStats) AddServed() {
	ss.served.Add(1)
}

// AddListing increments the number of directory listings served counter
func (ss *ServeStats) AddListing() {
	ss.listings.Add(1)
}

// AddNotFound increments the number of not found responses counter
func (ss *ServeStats) AddNotFound() {
	ss.notFound.Add(1)
}

// AddBytes increments the number of bytes served counter
func (ss *ServeStats) AddBytes(bc int64) {
	if bc <= 0 {
		return
	}
	ss.bytes.Add(uint64(bc))
}

// GetStats returns a Snapshot of the current counters.
func (ss *ServeStats) GetStats() Snapshot {
	return Snapshot{
		FilesServed:    ss.served.Load(),
		ListingsServed: ss.listings.Load(),
		NotFound:       ss.notFound.Load(),
		BytesServed:    ss.bytes.Load(),
	}
}

// Handler returns an http.HandlerFunc that returns running totals and
// stats about the server.
func Handler(ss *ServeStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := ss.GetStats()
		if r.URL.Query().Get("format") == "json" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			// #nosec G104
			json.NewEncoder(w).Encode(s)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "FilesServed, ListingsServed, NotFound, BytesServed\n%d, %d, %d, %d\n",
			s.FilesServed, s.ListingsServed, s.NotFound, s.BytesServed)
	}
}
