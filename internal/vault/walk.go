// Package vault walks a Logseq graph directory and yields parsed pages.
package vault

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/muninn-kg/muninn/internal/parser"
)

// WalkResult is one markdown file: its parsed document, or the per-file
// error that made it unreadable/unparseable.
type WalkResult struct {
	Path         string
	RelativePath string
	Document     *parser.Document
	Err          error
}

// WalkMarkdownFiles walks all markdown files under root and calls the
// handler for each. It skips Logseq's own metadata directory, hidden
// directories, and any configured excludes. Per-file read/parse failures
// are delivered as WalkResult.Err; the walk itself continues.
func WalkMarkdownFiles(root string, excludes []string, handler func(result WalkResult) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		relativePath, _ := filepath.Rel(root, path)

		if err != nil {
			return handler(WalkResult{Path: path, RelativePath: relativePath, Err: err})
		}

		if d.IsDir() {
			if path != root && skipDir(d.Name(), excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return handler(WalkResult{Path: path, RelativePath: relativePath, Err: err})
		}

		doc, err := parser.Parse(path, content)
		if err != nil {
			return handler(WalkResult{Path: path, RelativePath: relativePath, Err: err})
		}

		return handler(WalkResult{Path: path, RelativePath: relativePath, Document: doc})
	})
}

func skipDir(name string, excludes []string) bool {
	if name == "logseq" || strings.HasPrefix(name, ".") {
		return true
	}
	for _, ex := range excludes {
		if name == ex {
			return true
		}
	}
	return false
}
