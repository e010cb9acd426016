// Package testutil provides test fixtures for graph directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGraph is a temporary graph directory for tests.
type TestGraph struct {
	t *testing.T

	// Path is the graph root directory.
	Path string
}

// NewGraph creates an empty graph directory that is cleaned up with the
// test.
func NewGraph(t *testing.T) *TestGraph {
	t.Helper()
	return &TestGraph{t: t, Path: t.TempDir()}
}

// WritePage writes a markdown page at the given relative path, creating
// parent directories as needed.
func (g *TestGraph) WritePage(relPath, content string) {
	g.t.Helper()
	g.WriteFile(relPath, content)
}

// WriteFile writes an arbitrary file at the given relative path.
func (g *TestGraph) WriteFile(relPath, content string) {
	g.t.Helper()
	fullPath := filepath.Join(g.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		g.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		g.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}
