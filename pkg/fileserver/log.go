// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"net/http"

	"github.com/cactus/mlog"
)

func resultToMlogMap(req *http.Request, res Result) mlog.Map {
	m := mlog.Map{
		"method":      req.Method,
		"path":        req.RequestURI,
		"proto":       req.Proto,
		"remote_addr": req.RemoteAddr,
	}

	switch r := res.(type) {
	case *File:
		m["result"] = "file"
		m["name"] = r.Name
		m["size"] = r.Size
		m["content_type"] = r.ContentType
	case *Listing:
		m["result"] = "listing"
		m["entries"] = len(r.Entries)
	case *Redirect:
		m["result"] = "redirect"
		m["location"] = r.Location
	case *NotFound:
		m["result"] = "not_found"
		if r.Err != nil {
			m["err"] = r.Err
		}
	}
	return m
}
