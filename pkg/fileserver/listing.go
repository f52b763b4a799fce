// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A ListingRenderer writes a directory listing document.
type ListingRenderer interface {
	ContentType() string
	RenderListing(w io.Writer, l *Listing) error
}

// HTMLListing renders listings as a plain html5 document with one link
// per entry.
type HTMLListing struct{}

// ContentType implements ListingRenderer.
func (HTMLListing) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderListing implements ListingRenderer.
func (HTMLListing) RenderListing(w io.Writer, l *Listing) error {
	title := "Directory listing for " + l.Path

	head := element(atom.Head,
		element(atom.Meta, nil).withAttr("charset", "utf-8"),
		element(atom.Title, text(title)),
	)

	list := element(atom.Ul)
	for _, e := range l.Entries {
		a := element(atom.A, text(e.DisplayName())).withAttr("href", e.Href())
		if !e.IsDir && !e.ModTime.IsZero() {
			a.withAttr("title", humanize.Bytes(uint64(e.Size))+", "+e.ModTime.UTC().Format("2006-01-02 15:04:05 MST"))
		}
		list.AppendChild(element(atom.Li, a).Node)
	}

	body := element(atom.Body,
		element(atom.H1, text(title)),
		element(atom.Hr),
		list,
		element(atom.Hr),
	)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(element(atom.Html, head, body).withAttr("lang", "en").Node)
	return html.Render(w, doc)
}

type node struct {
	*html.Node
}

func (n node) withAttr(key, val string) node {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}

func element(a atom.Atom, children ...interface{}) node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		switch c := c.(type) {
		case node:
			n.AppendChild(c.Node)
		case *html.Node:
			n.AppendChild(c)
		}
	}
	return node{n}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
