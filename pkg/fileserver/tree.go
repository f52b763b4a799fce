// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"path"

	"github.com/dustin/go-humanize"
	"github.com/xlab/treeprint"
)

func (d *DirResolver) printTree(stree treeprint.Tree, dir string) error {
	entries, err := d.list(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		switch {
		case e.IsDir && !e.Symlink:
			branch := stree.AddBranch(e.DisplayName())
			if err := d.printTree(branch, path.Join(dir, e.Name)); err != nil {
				return err
			}
		case e.IsDir:
			// symlinked directories are not followed, they may loop
			stree.AddNode(e.DisplayName())
		default:
			stree.AddMetaNode(humanize.Bytes(uint64(e.Size)), e.DisplayName())
		}
	}
	return nil
}

// RenderTree renders every path under the root that the resolver would
// serve, hidden paths excluded.
func (d *DirResolver) RenderTree() (string, error) {
	tree := treeprint.NewWithRoot(".")
	if err := d.printTree(tree, "."); err != nil {
		return "", err
	}
	return tree.String(), nil
}
