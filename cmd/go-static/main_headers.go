// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/cactus/mlog"
)

// parseHeaders turns "Name: value" strings into a header map, skipping
// (and logging) malformed entries.
func parseHeaders(headers []string) map[string]string {
	out := make(map[string]string, len(headers))
	for _, v := range headers {
		s := strings.SplitN(v, ":", 2)
		if len(s) != 2 {
			mlog.Printf("ignoring bad header: '%s'", v)
			continue
		}

		s0 := strings.TrimSpace(s[0])
		s1 := strings.TrimSpace(s[1])

		if len(s0) == 0 || len(s1) == 0 {
			mlog.Printf("ignoring bad header: '%s'", v)
			continue
		}
		out[s0] = s1
	}
	return out
}
