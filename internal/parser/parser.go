// Package parser wraps goldmark and exposes parsed markdown documents
// with byte-offset position metadata.
package parser

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Document is a parsed markdown page: its path, raw source, and AST root.
type Document struct {
	Path   string
	Source []byte
	Root   ast.Node
}

// Parse parses markdown source into a Document.
func Parse(path string, source []byte) (*Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))
	if root == nil {
		return nil, fmt.Errorf("parse %s: no document produced", path)
	}
	return &Document{
		Path:   path,
		Source: source,
		Root:   root,
	}, nil
}

// TopLevelItems returns the list items that are direct children of the
// document root, unwrapping one level of list. Bare top-level list items
// are included as-is.
func (d *Document) TopLevelItems() []ast.Node {
	var items []ast.Node
	for child := d.Root.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case ast.KindList:
			for item := child.FirstChild(); item != nil; item = item.NextSibling() {
				if item.Kind() == ast.KindListItem {
					items = append(items, item)
				}
			}
		case ast.KindListItem:
			items = append(items, child)
		}
	}
	return items
}
