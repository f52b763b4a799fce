// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestRenderTree(t *testing.T) {
	t.Parallel()
	hide, err := NewHideRules([]string{".git", "*.env"})
	assert.NilError(t, err)
	r := NewDirResolver(testFS(), nil, hide, nil)

	out, err := r.RenderTree()
	assert.NilError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Check(t, is.Equal(".", lines[0]))
	assert.Check(t, is.Contains(out, "data/"))
	assert.Check(t, is.Contains(out, "[15 B]  report.txt"))
	assert.Check(t, is.Contains(out, "nested/"))
	assert.Check(t, is.Contains(out, "deep.json"))
	assert.Check(t, !strings.Contains(out, ".git"))
	assert.Check(t, !strings.Contains(out, "secret.env"))
}
