package parser

import (
	"errors"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrNoPosition indicates a node carries no byte-offset position metadata
// (e.g. an empty list item). Builders treat this as malformed input.
var ErrNoPosition = errors.New("node has no position metadata")

// NodeStart returns the byte offset of the line on which the node's first
// text segment starts. The line start is used so that list markers ("- ")
// and indentation belong to the node's span.
func NodeStart(n ast.Node, source []byte) (int, error) {
	seg, ok := firstSegment(n)
	if !ok {
		return 0, ErrNoPosition
	}
	return lineStart(source, seg.Start), nil
}

// NodeStop returns the byte offset just past the node's last text segment.
func NodeStop(n ast.Node) (int, error) {
	seg, ok := lastSegment(n)
	if !ok {
		return 0, ErrNoPosition
	}
	return seg.Stop, nil
}

// FirstChildList returns the node's first direct child of kind List, or nil.
func FirstChildList(n ast.Node) ast.Node {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Kind() == ast.KindList {
			return child
		}
	}
	return nil
}

func hasLines(n ast.Node) bool {
	return n.Type() == ast.TypeBlock || n.Type() == ast.TypeDocument
}

func firstSegment(n ast.Node) (text.Segment, bool) {
	if hasLines(n) && n.Lines().Len() > 0 {
		return n.Lines().At(0), true
	}
	if t, ok := n.(*ast.Text); ok {
		return t.Segment, true
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if seg, ok := firstSegment(child); ok {
			return seg, true
		}
	}
	return text.Segment{}, false
}

func lastSegment(n ast.Node) (text.Segment, bool) {
	for child := n.LastChild(); child != nil; child = child.PreviousSibling() {
		if seg, ok := lastSegment(child); ok {
			return seg, true
		}
	}
	if hasLines(n) && n.Lines().Len() > 0 {
		return n.Lines().At(n.Lines().Len() - 1), true
	}
	if t, ok := n.(*ast.Text); ok {
		return t.Segment, true
	}
	return text.Segment{}, false
}

func lineStart(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	for i := offset - 1; i >= 0; i-- {
		if source[i] == '\n' {
			return i + 1
		}
	}
	return 0
}
