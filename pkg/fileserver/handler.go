// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package fileserver serves a directory tree over HTTP, with content type
// inference, index files and generated directory listings.
package fileserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/cactus/mlog"
)

// Config holds configuration data used when creating a Handler with New.
type Config struct {
	// IndexNames are tried, in order, when a directory is requested.
	// Empty means DefaultIndexNames.
	IndexNames []string
	// MimeTypes maps file extensions to content types, taking precedence
	// over the system mime tables.
	MimeTypes map[string]string
	// HideRules are doublestar patterns for paths that are never served.
	HideRules []string
	// Dir is the directory on disk behind the served fs.FS. When set,
	// symlinks leading to hidden paths are hidden as well.
	Dir string
}

// ServeMetrics interface for Handler to use for stats/metrics.
// This must be goroutine safe, as the methods will be called from
// many request goroutines.
type ServeMetrics interface {
	AddServed()
	AddBytes(bc int64)
	AddListing()
	AddNotFound()
}

// A Handler answers requests with whatever its Resolver decides.
type Handler struct {
	resolver Resolver
	renderer ListingRenderer
	metrics  ServeMetrics
}

// ServeHTTP resolves the request path and writes the file, listing,
// redirect or not found response.
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	res := h.resolver.Resolve(req.URL.Path)

	if mlog.DefaultLogger.HasDebug() {
		mlog.Debugm("resolved request", resultToMlogMap(req, res))
	}

	switch r := res.(type) {
	case *File:
		h.serveFile(w, req, r)
	case *Listing:
		h.serveListing(w, req, r)
	case *Redirect:
		loc := r.Location
		if q := req.URL.RawQuery; q != "" {
			loc += "?" + q
		}
		redirectsSent.Inc()
		w.Header().Set("Location", loc)
		w.WriteHeader(http.StatusMovedPermanently)
	case *NotFound:
		h.notFound(w)
	default:
		h.notFound(w)
	}
}

func (h *Handler) notFound(w http.ResponseWriter) {
	notFoundSent.Inc()
	if h.metrics != nil {
		h.metrics.AddNotFound()
	}
	http.Error(w, "404 Not Found", http.StatusNotFound)
}

func (h *Handler) serveFile(w http.ResponseWriter, req *http.Request, f *File) {
	fh, err := f.Open()
	if err != nil {
		mlog.Debugm("could not open file", mlog.Map{"name": f.Name, "err": err})
		h.notFound(w)
		return
	}
	// #nosec G307
	defer fh.Close()

	w.Header().Set("Content-Type", f.ContentType)
	cw := &countingWriter{ResponseWriter: w}

	if rs, ok := fh.(io.ReadSeeker); ok {
		http.ServeContent(cw, req, f.Name, f.ModTime, rs)
	} else {
		// fs.File without Seek. no ranges, but keep the conditional
		// get handling of the standard content server.
		hdr := w.Header()
		hdr.Set("Content-Length", strconv.FormatInt(f.Size, 10))
		if !f.ModTime.IsZero() {
			hdr.Set("Last-Modified", f.ModTime.UTC().Format(http.TimeFormat))
			if checkNotModified(req, f) {
				hdr.Del("Content-Type")
				hdr.Del("Content-Length")
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		cw.WriteHeader(http.StatusOK)
		if req.Method != http.MethodHead {
			_, err = io.Copy(cw, fh)
		}
	}
	// 304s and failed ranges are not counted as served
	if cw.status == http.StatusOK || cw.status == http.StatusPartialContent {
		filesServed.Inc()
		if h.metrics != nil {
			h.metrics.AddServed()
		}
	}
	h.countBytes(cw.written)

	if err != nil {
		logWriteError(req, err)
	}
}

func (h *Handler) serveListing(w http.ResponseWriter, req *http.Request, l *Listing) {
	var buf bytes.Buffer
	if err := h.renderer.RenderListing(&buf, l); err != nil {
		mlog.Printm("error rendering listing", mlog.Map{"path": l.Path, "err": err})
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	listingsServed.Inc()
	if h.metrics != nil {
		h.metrics.AddListing()
	}

	hdr := w.Header()
	hdr.Set("Content-Type", h.renderer.ContentType())
	hdr.Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodHead {
		return
	}

	n, err := buf.WriteTo(w)
	h.countBytes(n)
	if err != nil {
		logWriteError(req, err)
	}
}

func (h *Handler) countBytes(n int64) {
	if n <= 0 {
		return
	}
	bytesSent.Add(float64(n))
	if h.metrics != nil {
		h.metrics.AddBytes(n)
	}
}

func checkNotModified(req *http.Request, f *File) bool {
	ims := req.Header.Get("If-Modified-Since")
	if ims == "" {
		return false
	}
	t, err := http.ParseTime(ims)
	if err != nil {
		return false
	}
	return !f.ModTime.Truncate(time.Second).After(t)
}

func logWriteError(req *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		mlog.Debugm("client aborted request", mlog.Map{"path": req.URL.Path})
	case isBrokenPipe(err):
		mlog.Debugm("error writing response", mlog.Map{"err": err, "path": req.URL.Path})
	case errors.Is(err, fs.ErrClosed):
		mlog.Debugm("file closed during response", mlog.Map{"err": err, "path": req.URL.Path})
	default:
		mlog.Printm("error writing response", mlog.Map{"err": err, "path": req.URL.Path})
	}
}

// SetMetricsCollector sets a ServeMetrics collector for the Handler.
func (h *Handler) SetMetricsCollector(sm ServeMetrics) {
	h.metrics = sm
}

// NewHandler returns a Handler using the given resolver and listing
// renderer. A nil renderer means HTMLListing.
func NewHandler(r Resolver, lr ListingRenderer) *Handler {
	if lr == nil {
		lr = HTMLListing{}
	}
	return &Handler{resolver: r, renderer: lr}
}

// NewResolver returns a DirResolver for fsys built from config. Returns an
// error if the mime overrides or hide rules are invalid.
func NewResolver(fsys fs.FS, config Config) (*DirResolver, error) {
	overrides, err := ParseMimeOverrides(config.MimeTypes)
	if err != nil {
		return nil, err
	}

	hide, err := NewHideRules(config.HideRules)
	if err != nil {
		return nil, err
	}

	d := NewDirResolver(fsys, NewExtTyper(overrides), hide, config.IndexNames)
	if config.Dir != "" && hide.Len() > 0 {
		if err := d.HideLinkTargets(config.Dir); err != nil {
			return nil, fmt.Errorf("could not resolve root directory: %w", err)
		}
	}
	return d, nil
}

// New returns a Handler serving fsys with a DirResolver built from config.
func New(fsys fs.FS, config Config) (*Handler, error) {
	resolver, err := NewResolver(fsys, config)
	if err != nil {
		return nil, err
	}
	return NewHandler(resolver, HTMLListing{}), nil
}
