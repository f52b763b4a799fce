// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"io/fs"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// A Resolver maps a request path onto what should be sent back for it.
type Resolver interface {
	Resolve(urlPath string) Result
}

// Result is the outcome of a Resolve call. It is always one of *File,
// *Listing, *Redirect or *NotFound.
type Result interface {
	isResult()
}

// File is a regular file to be sent to the client.
type File struct {
	// Name is the slash separated path of the file, relative to the root.
	Name        string
	Size        int64
	ModTime     time.Time
	ContentType string

	fsys fs.FS
}

// Open opens the file for reading.
func (f *File) Open() (fs.File, error) {
	return f.fsys.Open(f.Name)
}

// Entry is a single child of a listed directory.
type Entry struct {
	Name    string
	IsDir   bool
	Symlink bool
	Size    int64
	ModTime time.Time
}

// DisplayName is the name shown in a listing. Symlinks get an @,
// directories a trailing slash.
func (e Entry) DisplayName() string {
	switch {
	case e.Symlink:
		return e.Name + "@"
	case e.IsDir:
		return e.Name + "/"
	}
	return e.Name
}

// Href is the escaped, relative link target for the entry.
func (e Entry) Href() string {
	p := e.Name
	if e.IsDir {
		p += "/"
	}
	return (&url.URL{Path: p}).String()
}

// Listing is a generated index of a directory lacking an index file.
type Listing struct {
	// Path is the request path of the directory, always with a trailing slash.
	Path    string
	Entries []Entry
}

// Redirect sends the client elsewhere. Location is relative to the request
// path and already escaped.
type Redirect struct {
	Location string
}

// NotFound is returned for missing, hidden or unreachable paths.
type NotFound struct {
	Path string
	Err  error
}

func (*File) isResult()     {}
func (*Listing) isResult()  {}
func (*Redirect) isResult() {}
func (*NotFound) isResult() {}

// DefaultIndexNames are tried, in order, when a directory is requested.
var DefaultIndexNames = []string{"index.html", "index.htm"}

// DirResolver resolves request paths against an fs.FS.
type DirResolver struct {
	fsys       fs.FS
	typer      Typer
	hide       *HideRules
	indexNames []string
	// on disk directory backing fsys, if known. symlink targets are
	// checked against the hide rules relative to it.
	dir string
}

// NewDirResolver returns a DirResolver serving fsys. A nil typer uses
// NewExtTyper(nil); nil hide rules hide nothing.
func NewDirResolver(fsys fs.FS, typer Typer, hide *HideRules, indexNames []string) *DirResolver {
	if typer == nil {
		typer = NewExtTyper(nil)
	}
	if len(indexNames) == 0 {
		indexNames = DefaultIndexNames
	}
	return &DirResolver{
		fsys:       fsys,
		typer:      typer,
		hide:       hide,
		indexNames: indexNames,
	}
}

// HideLinkTargets makes the resolver apply its hide rules to the targets
// of symlinks too, not only to request paths. dir is the directory on disk
// that fsys serves.
func (d *DirResolver) HideLinkTargets(dir string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return err
	}
	d.dir = resolved
	return nil
}

// hidden reports whether name, or whatever it links to, is hidden.
func (d *DirResolver) hidden(name string) bool {
	if d.hide.Len() == 0 {
		return false
	}
	if d.hide.Hidden(name) {
		return true
	}
	if d.dir == "" {
		return false
	}

	target, err := filepath.EvalSymlinks(filepath.Join(d.dir, filepath.FromSlash(name)))
	if err != nil {
		// missing, or a dangling link. nothing to serve either way.
		return false
	}
	rel, err := filepath.Rel(d.dir, target)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		// outside the root, which the root fs refuses to open
		return false
	}
	return rel != name && d.hide.Hidden(rel)
}

// Resolve implements Resolver.
func (d *DirResolver) Resolve(urlPath string) Result {
	name, ok := cleanPath(urlPath)
	if !ok || d.hidden(name) {
		return &NotFound{Path: urlPath}
	}

	info, err := fs.Stat(d.fsys, name)
	if err != nil {
		return &NotFound{Path: urlPath, Err: err}
	}

	if !info.IsDir() {
		// a file can not have children
		if strings.HasSuffix(urlPath, "/") {
			return &NotFound{Path: urlPath}
		}
		if !info.Mode().IsRegular() {
			return &NotFound{Path: urlPath}
		}
		return d.file(name, info)
	}

	if !strings.HasSuffix(urlPath, "/") {
		return &Redirect{Location: (&url.URL{Path: path.Base(urlPath) + "/"}).String()}
	}

	for _, index := range d.indexNames {
		iname := path.Join(name, index)
		if d.hidden(iname) {
			continue
		}
		iinfo, err := fs.Stat(d.fsys, iname)
		if err != nil || !iinfo.Mode().IsRegular() {
			continue
		}
		return d.file(iname, iinfo)
	}

	entries, err := d.list(name)
	if err != nil {
		return &NotFound{Path: urlPath, Err: err}
	}
	return &Listing{Path: urlPath, Entries: entries}
}

func (d *DirResolver) file(name string, info fs.FileInfo) *File {
	return &File{
		Name:        name,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: d.typer.ContentType(name),
		fsys:        d.fsys,
	}
}

func (d *DirResolver) list(name string) ([]Entry, error) {
	dirents, err := fs.ReadDir(d.fsys, name)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		child := path.Join(name, de.Name())
		if d.hidden(child) {
			continue
		}

		e := Entry{
			Name:    de.Name(),
			IsDir:   de.IsDir(),
			Symlink: de.Type()&fs.ModeSymlink != 0,
		}
		// follow symlinks, so a link to a directory is listed as one.
		// links leading nowhere (or out of the root) are still listed.
		if info, err := fs.Stat(d.fsys, child); err == nil {
			e.IsDir = info.IsDir()
			e.Size = info.Size()
			e.ModTime = info.ModTime()
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// cleanPath turns a request path into an fs.FS name. Paths not rooted at /,
// or containing a .. segment anywhere, are rejected.
func cleanPath(urlPath string) (string, bool) {
	if !strings.HasPrefix(urlPath, "/") {
		return "", false
	}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == ".." {
			return "", false
		}
	}

	name := strings.TrimPrefix(path.Clean(urlPath), "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
