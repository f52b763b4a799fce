// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cactus/mlog"
)

// httpDate caches the formatted Date header, so every response does not
// pay for formatting it.
type httpDate struct {
	dateValue atomic.Value
}

func (h *httpDate) String() string {
	stamp := h.dateValue.Load()
	if stamp == nil {
		mlog.Debug("got a nil datestamp. Trying to recover...")
		return h.Update()
	}
	return stamp.(string)
}

// Update stores and returns the current time, formatted.
func (h *httpDate) Update() string {
	s := time.Now().UTC().Format(http.TimeFormat)
	h.dateValue.Store(s)
	return s
}

// startUpdater refreshes the stamp every interval until the process exits.
func (h *httpDate) startUpdater(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		for range ticker.C {
			h.Update()
		}
	}()
}

func newHTTPDate() *httpDate {
	d := &httpDate{}
	d.Update()
	d.startUpdater(1 * time.Second)
	return d
}

var formattedDate = newHTTPDate()
