package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/muninn-kg/muninn/internal/logseq"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteFileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	f := &logseq.File{
		ID:         "file-1",
		Path:       "pages/basic.md",
		Title:      "basic",
		Properties: map[string]string{"foo": "bar"},
		Wikilinks:  []string{"other"},
		Tags:       []string{"tag"},
	}
	if err := s.UpsertFiles(ctx, []*logseq.File{f}); err != nil {
		t.Fatalf("UpsertFiles: %v", err)
	}

	got, err := s.GetFile(ctx, "file-1")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if got.Title != "basic" || got.Properties["foo"] != "bar" {
		t.Fatalf("unexpected file: %+v", got)
	}
}

func TestSQLiteUpsertReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	parent := "parent-1"
	b := &logseq.Block{ID: "block-1", Content: "- first", FileID: "file-1"}
	if err := s.UpsertBlocks(ctx, []*logseq.Block{b}); err != nil {
		t.Fatalf("UpsertBlocks: %v", err)
	}
	b.Content = "- second"
	b.ParentBlockID = &parent
	if err := s.UpsertBlocks(ctx, []*logseq.Block{b}); err != nil {
		t.Fatalf("UpsertBlocks again: %v", err)
	}

	got, err := s.GetBlock(ctx, "block-1")
	if err != nil {
		t.Fatalf("GetBlock: %v", err)
	}
	if got.Content != "- second" {
		t.Fatalf("content=%q, upsert must replace", got.Content)
	}
	if got.ParentBlockID == nil || *got.ParentBlockID != parent {
		t.Fatalf("parent_block_id=%v, want %q", got.ParentBlockID, parent)
	}
}

func TestSQLiteNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.GetFile(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetFile err=%v, want ErrNotFound", err)
	}
	if _, err := s.GetBlock(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetBlock err=%v, want ErrNotFound", err)
	}
}

func TestSQLiteSearch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	files := []*logseq.File{
		{ID: "f1", Path: "pages/cooking.md", Title: "cooking"},
		{ID: "f2", Path: "pages/sailing.md", Title: "sailing"},
	}
	if err := s.UpsertFiles(ctx, files); err != nil {
		t.Fatalf("UpsertFiles: %v", err)
	}
	blocks := []*logseq.Block{
		{ID: "b1", Content: "- bake sourdough bread", FileID: "f1"},
		{ID: "b2", Content: "- trim the mainsail", FileID: "f2"},
	}
	if err := s.UpsertBlocks(ctx, blocks); err != nil {
		t.Fatalf("UpsertBlocks: %v", err)
	}

	hits, err := s.SearchFiles(ctx, "cooking", 10)
	if err != nil {
		t.Fatalf("SearchFiles: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "f1" {
		t.Fatalf("file hits=%+v, want only f1", hits)
	}

	blockHits, err := s.SearchBlocks(ctx, "sourdough", 10)
	if err != nil {
		t.Fatalf("SearchBlocks: %v", err)
	}
	if len(blockHits) != 1 || blockHits[0].ID != "b1" {
		t.Fatalf("block hits=%+v, want only b1", blockHits)
	}
}
